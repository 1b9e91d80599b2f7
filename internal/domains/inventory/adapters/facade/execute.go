package facade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Operation names understood by Execute.
const (
	OpAllProducts        = "allProducts"
	OpProduct            = "product"
	OpProductsByCategory = "productsByCategory"
	OpSearchProducts     = "searchProducts"
	OpAllOrders          = "allOrders"
	OpCreateOrder        = "createOrder"
	OpUpdateProductStock = "updateProductStock"
	OpAddProduct         = "addProduct"
)

// Request names an operation and carries its variables as raw JSON.
type Request struct {
	Operation string          `json:"operation"`
	Variables json.RawMessage `json:"variables,omitempty"`
}

type handler func(f *Facade, ctx context.Context, vars json.RawMessage) (Result[any], error)

var operations = map[string]handler{
	OpAllProducts: func(f *Facade, ctx context.Context, _ json.RawMessage) (Result[any], error) {
		return erase(f.AllProducts(ctx)), nil
	},
	OpProduct: func(f *Facade, ctx context.Context, vars json.RawMessage) (Result[any], error) {
		in, err := decode[struct {
			ID string `json:"id"`
		}](vars)
		if err != nil {
			return Result[any]{}, err
		}
		return erase(f.Product(ctx, in.ID)), nil
	},
	OpProductsByCategory: func(f *Facade, ctx context.Context, vars json.RawMessage) (Result[any], error) {
		in, err := decode[struct {
			Category string `json:"category"`
		}](vars)
		if err != nil {
			return Result[any]{}, err
		}
		return erase(f.ProductsByCategory(ctx, in.Category)), nil
	},
	OpSearchProducts: func(f *Facade, ctx context.Context, vars json.RawMessage) (Result[any], error) {
		in, err := decode[SearchInput](vars)
		if err != nil {
			return Result[any]{}, err
		}
		return erase(f.SearchProducts(ctx, in)), nil
	},
	OpAllOrders: func(f *Facade, ctx context.Context, _ json.RawMessage) (Result[any], error) {
		return erase(f.AllOrders(ctx)), nil
	},
	OpCreateOrder: func(f *Facade, ctx context.Context, vars json.RawMessage) (Result[any], error) {
		in, err := decode[CreateOrderInput](vars)
		if err != nil {
			return Result[any]{}, err
		}
		return erase(f.CreateOrder(ctx, in)), nil
	},
	OpUpdateProductStock: func(f *Facade, ctx context.Context, vars json.RawMessage) (Result[any], error) {
		in, err := decode[UpdateProductStockInput](vars)
		if err != nil {
			return Result[any]{}, err
		}
		return erase(f.UpdateProductStock(ctx, in)), nil
	},
	OpAddProduct: func(f *Facade, ctx context.Context, vars json.RawMessage) (Result[any], error) {
		in, err := decode[AddProductInput](vars)
		if err != nil {
			return Result[any]{}, err
		}
		return erase(f.AddProduct(ctx, in)), nil
	},
}

// Execute dispatches a request by operation name. Unknown operations and
// undecodable variables come back as errors in the result.
func (f *Facade) Execute(ctx context.Context, req Request) Result[any] {
	h, ok := operations[req.Operation]
	if !ok {
		return Result[any]{Errors: []Error{{
			Code:    CodeUnknownOperation,
			Message: fmt.Sprintf("unknown operation %q", req.Operation),
		}}}
	}
	result, err := h(f, ctx, req.Variables)
	if err != nil {
		return Result[any]{Errors: []Error{{Code: CodeValidation, Message: err.Error()}}}
	}
	return result
}

func erase[T any](r Result[T]) Result[any] {
	return Result[any]{Data: r.Data, Errors: r.Errors}
}

func decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return out, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("invalid variables: %w", err)
	}
	return out, nil
}

package metadata

import (
	"fmt"

	"github.com/signadot/respack/ir"
)

func optInt(node *ir.Node, field string, def int) (int, error) {
	v := ir.Get(node, field)
	if v == nil {
		return def, nil
	}
	i, err := v.AsInt()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBadMetadata, err)
	}
	return int(i), nil
}

func optBool(node *ir.Node, field string, def bool) (bool, error) {
	v := ir.Get(node, field)
	if v == nil {
		return def, nil
	}
	b, err := v.AsBool()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBadMetadata, err)
	}
	return b, nil
}

func optString(node *ir.Node, field string) (string, error) {
	v := ir.Get(node, field)
	if v == nil {
		return "", nil
	}
	s, err := v.AsString()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadMetadata, err)
	}
	return s, nil
}

func reqString(node *ir.Node, field string) (string, error) {
	v := ir.Get(node, field)
	if v == nil {
		return "", fmt.Errorf("%w: %s: missing %s", ErrBadMetadata, node.Path(), field)
	}
	s, err := v.AsString()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadMetadata, err)
	}
	return s, nil
}

func reqArray(node *ir.Node, field string) ([]*ir.Node, error) {
	v := ir.Get(node, field)
	if v == nil {
		return nil, fmt.Errorf("%w: %s: missing %s", ErrBadMetadata, node.Path(), field)
	}
	if v.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: %s: expected array, got %s", ErrBadMetadata, v.Path(), v.Type)
	}
	return v.Values, nil
}

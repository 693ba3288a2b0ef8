package abi

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// DeployerArg is the meta value replaced with the signer address for address arguments
const DeployerArg = "deployer"

// Encoder converts command line strings into typed constructor arguments
type Encoder struct{}

// NewEncoder creates a new constructor argument encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodeConstructorArgs converts raw values following the constructor inputs.
// The returned values can be packed with the same ABI.
func (e *Encoder) EncodeConstructorArgs(parsed *abi.ABI, args []string, deployer common.Address) ([]any, error) {
	inputs := parsed.Constructor.Inputs
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("%w: constructor(%s) expects %d arguments, got %d",
			domain.ErrInvalidArguments, Signature(inputs), len(inputs), len(args))
	}

	values := make([]any, 0, len(args))
	for i, input := range inputs {
		value, err := convert(input.Type, strings.TrimSpace(args[i]), deployer)
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("%w: argument %s (%s): %v", domain.ErrInvalidArguments, name, input.Type.String(), err)
		}
		values = append(values, value)
	}

	return values, nil
}

// Signature renders constructor inputs as "type name, ..."
func Signature(inputs abi.Arguments) string {
	return strings.Join(lo.Map(inputs, func(arg abi.Argument, _ int) string {
		return strings.TrimSpace(arg.Type.String() + " " + arg.Name)
	}), ", ")
}

func convert(t abi.Type, raw string, deployer common.Address) (any, error) {
	switch t.T {
	case abi.AddressTy:
		if strings.EqualFold(raw, DeployerArg) {
			return deployer, nil
		}
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.UintTy, abi.IntTy:
		return convertInteger(t, raw)

	case abi.BoolTy:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", raw)
		}
		return b, nil

	case abi.StringTy:
		return unquote(raw), nil

	case abi.BytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes %q: %v", raw, err)
		}
		return b, nil

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes%d %q: %v", t.Size, raw, err)
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("bytes%d needs %d bytes, got %d", t.Size, t.Size, len(b))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.SliceTy, abi.ArrayTy:
		return convertList(t, raw, deployer)

	default:
		return nil, fmt.Errorf("unsupported constructor argument type %s", t.String())
	}
}

func convertInteger(t abi.Type, raw string) (any, error) {
	n, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}

	if t.T == abi.UintTy {
		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %s for %s", raw, t.String())
		}
		if n.BitLen() > t.Size {
			return nil, fmt.Errorf("value %s overflows %s", raw, t.String())
		}
		switch t.Size {
		case 8:
			return uint8(n.Uint64()), nil
		case 16:
			return uint16(n.Uint64()), nil
		case 32:
			return uint32(n.Uint64()), nil
		case 64:
			return n.Uint64(), nil
		}
		return n, nil
	}

	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
		return nil, fmt.Errorf("value %s overflows %s", raw, t.String())
	}
	switch t.Size {
	case 8:
		return int8(n.Int64()), nil
	case 16:
		return int16(n.Int64()), nil
	case 32:
		return int32(n.Int64()), nil
	case 64:
		return n.Int64(), nil
	}
	return n, nil
}

// convertList parses a one-dimensional list written as "[a,b,c]"
func convertList(t abi.Type, raw string, deployer common.Address) (any, error) {
	if t.Elem.T == abi.SliceTy || t.Elem.T == abi.ArrayTy || t.Elem.T == abi.TupleTy {
		return nil, fmt.Errorf("unsupported nested type %s", t.String())
	}
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return nil, fmt.Errorf("list must be written as [a,b,...], got %q", raw)
	}

	body := strings.TrimSpace(raw[1 : len(raw)-1])
	var items []string
	if body != "" {
		items = strings.Split(body, ",")
	}

	if t.T == abi.ArrayTy && len(items) != t.Size {
		return nil, fmt.Errorf("%s needs %d elements, got %d", t.String(), t.Size, len(items))
	}

	var list reflect.Value
	if t.T == abi.ArrayTy {
		list = reflect.New(t.GetType()).Elem()
	} else {
		list = reflect.MakeSlice(t.GetType(), len(items), len(items))
	}

	for i, item := range items {
		value, err := convert(*t.Elem, strings.TrimSpace(item), deployer)
		if err != nil {
			return nil, fmt.Errorf("element %d: %v", i, err)
		}
		list.Index(i).Set(reflect.ValueOf(value))
	}

	return list.Interface(), nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// Ensure the adapter implements the port
var _ usecase.ArgumentEncoder = (*Encoder)(nil)

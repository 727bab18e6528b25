// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"math"
	"reflect"
	"testing"

	"github.com/orbs-network/orbs-counter/services/processor/native/types"
	"github.com/orbs-network/orbs-counter/test/builders"
	"github.com/stretchr/testify/require"
)

type argsContract struct{}

func (c *argsContract) uint32Echo(ctx types.Context, a uint32) (uint32, error) { return a, nil }
func (c *argsContract) int32Echo(ctx types.Context, a int32) (int32, error) { return a, nil }
func (c *argsContract) bytesEcho(ctx types.Context, a []byte) ([]byte, error) { return a, nil }
func (c *argsContract) all(ctx types.Context, a uint32, b uint64, s string, d []byte) error {
	return nil
}
func (c *argsContract) noError(ctx types.Context) uint32 { return 0 }
func (c *argsContract) noContext(a uint32) error { return nil }

func typeOf(method interface{}) reflect.Type {
	return reflect.ValueOf(method).Type()
}

func TestPrepareMethodArgumentsForCallWithUint32(t *testing.T) {
	s := &service{}
	inValues, err := s.prepareMethodInputArgsForCall(typeOf((*argsContract).uint32Echo), builders.ArgumentsArray(uint32(1997)), "funcName")
	require.NoError(t, err)
	require.Len(t, inValues, 1)
	require.EqualValues(t, 1997, inValues[0].Uint())
}

func TestPrepareMethodArgumentsForCallWithInt32(t *testing.T) {
	s := &service{}
	inValues, err := s.prepareMethodInputArgsForCall(typeOf((*argsContract).int32Echo), builders.ArgumentsArray(int32(math.MinInt32)), "funcName")
	require.NoError(t, err)
	require.Equal(t, int32(math.MinInt32), inValues[0].Interface().(int32), "int32 travels as its uint32 bit pattern")
}

func TestPrepareMethodArgumentsForCallWithByteArray(t *testing.T) {
	s := &service{}
	inValues, err := s.prepareMethodInputArgsForCall(typeOf((*argsContract).bytesEcho), builders.ArgumentsArray([]byte("hello")), "funcName")
	require.NoError(t, err)
	require.EqualValues(t, []byte("hello"), inValues[0].Bytes())
}

func TestPrepareMethodArgumentsForCallWithAllTypes(t *testing.T) {
	s := &service{}
	inValues, err := s.prepareMethodInputArgsForCall(typeOf((*argsContract).all), builders.ArgumentsArray(uint32(1), uint64(2), "three", []byte{4}), "funcName")
	require.NoError(t, err)
	require.Len(t, inValues, 4)
}

func TestPrepareMethodArgumentsForCallWithWrongType(t *testing.T) {
	s := &service{}
	_, err := s.prepareMethodInputArgsForCall(typeOf((*argsContract).int32Echo), builders.ArgumentsArray("not a number"), "funcName")
	require.Error(t, err)
}

func TestPrepareMethodArgumentsForCallWithTooFewArgs(t *testing.T) {
	s := &service{}
	_, err := s.prepareMethodInputArgsForCall(typeOf((*argsContract).all), builders.ArgumentsArray(uint32(1)), "funcName")
	require.EqualError(t, err, "method 'funcName' takes 4 args but received 1")
}

func TestPrepareMethodArgumentsForCallWithTooManyArgs(t *testing.T) {
	s := &service{}
	_, err := s.prepareMethodInputArgsForCall(typeOf((*argsContract).uint32Echo), builders.ArgumentsArray(uint32(1), uint32(2)), "funcName")
	require.EqualError(t, err, "method 'funcName' takes 1 args but received more")
}

func TestVerifyMethodSignature(t *testing.T) {
	require.NoError(t, verifyMethodSignature(reflect.ValueOf((*argsContract).all), "all"))
	require.Error(t, verifyMethodSignature(reflect.ValueOf((*argsContract).noError), "noError"))
	require.Error(t, verifyMethodSignature(reflect.ValueOf((*argsContract).noContext), "noContext"))
	require.Error(t, verifyMethodSignature(reflect.ValueOf("not a function"), "string"))
}

func TestCreateMethodOutputArgsEncodesInt32AsUint32(t *testing.T) {
	s := &service{}
	out, err := s.createMethodOutputArgs([]reflect.Value{reflect.ValueOf(int32(-2))}, "funcName")
	require.NoError(t, err)

	i := out.ArgumentsIterator()
	require.True(t, i.HasNext())
	arg := i.NextArguments()
	require.True(t, arg.IsTypeUint32Value())
	require.EqualValues(t, 0xfffffffe, arg.Uint32Value())
}

func TestCreateMethodOutputArgsRejectsUnsupportedType(t *testing.T) {
	s := &service{}
	_, err := s.createMethodOutputArgs([]reflect.Value{reflect.ValueOf(1.5)}, "funcName")
	require.Error(t, err)
}

// AUTO GENERATED FILE (by membufc proto compiler v0.4.0)
package serializer

import (
	"bytes"
	"fmt"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

/////////////////////////////////////////////////////////////////////////////
// message SerializedContractKeyValueEntry

// reader

type SerializedContractKeyValueEntry struct {
	// ContractName primitives.ContractName
	// Key []byte
	// Value []byte

	// internal
	// implements membuffers.Message
	_message membuffers.InternalMessage
}

func (x *SerializedContractKeyValueEntry) String() string {
	if x == nil {
		return "<nil>"
	}
	return fmt.Sprintf("{ContractName:%s,Key:%s,Value:%s,}", x.StringContractName(), x.StringKey(), x.StringValue())
}

var _SerializedContractKeyValueEntry_Scheme = []membuffers.FieldType{membuffers.TypeString, membuffers.TypeBytes, membuffers.TypeBytes}
var _SerializedContractKeyValueEntry_Unions = [][]membuffers.FieldType{}

func SerializedContractKeyValueEntryReader(buf []byte) *SerializedContractKeyValueEntry {
	x := &SerializedContractKeyValueEntry{}
	x._message.Init(buf, membuffers.Offset(len(buf)), _SerializedContractKeyValueEntry_Scheme, _SerializedContractKeyValueEntry_Unions)
	return x
}

func (x *SerializedContractKeyValueEntry) IsValid() bool {
	return x._message.IsValid()
}

func (x *SerializedContractKeyValueEntry) Raw() []byte {
	return x._message.RawBuffer()
}

func (x *SerializedContractKeyValueEntry) Equal(y *SerializedContractKeyValueEntry) bool {
	if x == nil && y == nil {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return bytes.Equal(x.Raw(), y.Raw())
}

func (x *SerializedContractKeyValueEntry) ContractName() primitives.ContractName {
	return primitives.ContractName(x._message.GetString(0))
}

func (x *SerializedContractKeyValueEntry) RawContractName() []byte {
	return x._message.RawBufferForField(0, 0)
}

func (x *SerializedContractKeyValueEntry) RawContractNameWithHeader() []byte {
	return x._message.RawBufferWithHeaderForField(0, 0)
}

func (x *SerializedContractKeyValueEntry) MutateContractName(v primitives.ContractName) error {
	return x._message.SetString(0, string(v))
}

func (x *SerializedContractKeyValueEntry) StringContractName() string {
	return fmt.Sprintf("%s", x.ContractName())
}

func (x *SerializedContractKeyValueEntry) Key() []byte {
	return x._message.GetBytes(1)
}

func (x *SerializedContractKeyValueEntry) RawKey() []byte {
	return x._message.RawBufferForField(1, 0)
}

func (x *SerializedContractKeyValueEntry) RawKeyWithHeader() []byte {
	return x._message.RawBufferWithHeaderForField(1, 0)
}

func (x *SerializedContractKeyValueEntry) MutateKey(v []byte) error {
	return x._message.SetBytes(1, v)
}

func (x *SerializedContractKeyValueEntry) StringKey() string {
	return fmt.Sprintf("%x", x.Key())
}

func (x *SerializedContractKeyValueEntry) Value() []byte {
	return x._message.GetBytes(2)
}

func (x *SerializedContractKeyValueEntry) RawValue() []byte {
	return x._message.RawBufferForField(2, 0)
}

func (x *SerializedContractKeyValueEntry) RawValueWithHeader() []byte {
	return x._message.RawBufferWithHeaderForField(2, 0)
}

func (x *SerializedContractKeyValueEntry) MutateValue(v []byte) error {
	return x._message.SetBytes(2, v)
}

func (x *SerializedContractKeyValueEntry) StringValue() string {
	return fmt.Sprintf("%x", x.Value())
}

// builder

type SerializedContractKeyValueEntryBuilder struct {
	ContractName primitives.ContractName
	Key          []byte
	Value        []byte

	// internal
	// implements membuffers.Builder
	_builder               membuffers.InternalBuilder
	_overrideWithRawBuffer []byte
}

func (w *SerializedContractKeyValueEntryBuilder) Write(buf []byte) (err error) {
	if w == nil {
		return
	}
	w._builder.NotifyBuildStart()
	defer w._builder.NotifyBuildEnd()
	defer func() {
		if r := recover(); r != nil {
			err = &membuffers.ErrBufferOverrun{}
		}
	}()
	if w._overrideWithRawBuffer != nil {
		return w._builder.WriteOverrideWithRawBuffer(buf, w._overrideWithRawBuffer)
	}
	w._builder.Reset()
	w._builder.WriteString(buf, string(w.ContractName))
	w._builder.WriteBytes(buf, w.Key)
	w._builder.WriteBytes(buf, w.Value)
	return nil
}

func (w *SerializedContractKeyValueEntryBuilder) HexDump(prefix string, offsetFromStart membuffers.Offset) (err error) {
	if w == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err = &membuffers.ErrBufferOverrun{}
		}
	}()
	w._builder.Reset()
	w._builder.HexDumpString(prefix, offsetFromStart, "SerializedContractKeyValueEntry.ContractName", string(w.ContractName))
	w._builder.HexDumpBytes(prefix, offsetFromStart, "SerializedContractKeyValueEntry.Key", w.Key)
	w._builder.HexDumpBytes(prefix, offsetFromStart, "SerializedContractKeyValueEntry.Value", w.Value)
	return nil
}

func (w *SerializedContractKeyValueEntryBuilder) GetSize() membuffers.Offset {
	if w == nil {
		return 0
	}
	return w._builder.GetSize()
}

func (w *SerializedContractKeyValueEntryBuilder) CalcRequiredSize() membuffers.Offset {
	if w == nil {
		return 0
	}
	w.Write(nil)
	return w._builder.GetSize()
}

func (w *SerializedContractKeyValueEntryBuilder) Build() *SerializedContractKeyValueEntry {
	buf := make([]byte, w.CalcRequiredSize())
	if w.Write(buf) != nil {
		return nil
	}
	return SerializedContractKeyValueEntryReader(buf)
}

func SerializedContractKeyValueEntryBuilderFromRaw(raw []byte) *SerializedContractKeyValueEntryBuilder {
	return &SerializedContractKeyValueEntryBuilder{_overrideWithRawBuffer: raw}
}

/////////////////////////////////////////////////////////////////////////////
// message SerializedStateSnapshot

// reader

type SerializedStateSnapshot struct {
	// FormatVersion uint32
	// Height primitives.BlockHeight
	// Entries []SerializedContractKeyValueEntry

	// internal
	// implements membuffers.Message
	_message membuffers.InternalMessage
}

func (x *SerializedStateSnapshot) String() string {
	if x == nil {
		return "<nil>"
	}
	return fmt.Sprintf("{FormatVersion:%s,Height:%s,Entries:%s,}", x.StringFormatVersion(), x.StringHeight(), x.StringEntries())
}

var _SerializedStateSnapshot_Scheme = []membuffers.FieldType{membuffers.TypeUint32, membuffers.TypeUint64, membuffers.TypeMessageArray}
var _SerializedStateSnapshot_Unions = [][]membuffers.FieldType{}

func SerializedStateSnapshotReader(buf []byte) *SerializedStateSnapshot {
	x := &SerializedStateSnapshot{}
	x._message.Init(buf, membuffers.Offset(len(buf)), _SerializedStateSnapshot_Scheme, _SerializedStateSnapshot_Unions)
	return x
}

func (x *SerializedStateSnapshot) IsValid() bool {
	return x._message.IsValid()
}

func (x *SerializedStateSnapshot) Raw() []byte {
	return x._message.RawBuffer()
}

func (x *SerializedStateSnapshot) Equal(y *SerializedStateSnapshot) bool {
	if x == nil && y == nil {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return bytes.Equal(x.Raw(), y.Raw())
}

func (x *SerializedStateSnapshot) FormatVersion() uint32 {
	return x._message.GetUint32(0)
}

func (x *SerializedStateSnapshot) RawFormatVersion() []byte {
	return x._message.RawBufferForField(0, 0)
}

func (x *SerializedStateSnapshot) MutateFormatVersion(v uint32) error {
	return x._message.SetUint32(0, v)
}

func (x *SerializedStateSnapshot) StringFormatVersion() string {
	return fmt.Sprintf("%x", x.FormatVersion())
}

func (x *SerializedStateSnapshot) Height() primitives.BlockHeight {
	return primitives.BlockHeight(x._message.GetUint64(1))
}

func (x *SerializedStateSnapshot) RawHeight() []byte {
	return x._message.RawBufferForField(1, 0)
}

func (x *SerializedStateSnapshot) MutateHeight(v primitives.BlockHeight) error {
	return x._message.SetUint64(1, uint64(v))
}

func (x *SerializedStateSnapshot) StringHeight() string {
	return fmt.Sprintf("%s", x.Height())
}

func (x *SerializedStateSnapshot) EntriesIterator() *SerializedStateSnapshotEntriesIterator {
	return &SerializedStateSnapshotEntriesIterator{iterator: x._message.GetMessageArrayIterator(2)}
}

type SerializedStateSnapshotEntriesIterator struct {
	iterator *membuffers.Iterator
}

func (i *SerializedStateSnapshotEntriesIterator) HasNext() bool {
	return i.iterator.HasNext()
}

func (i *SerializedStateSnapshotEntriesIterator) NextEntries() *SerializedContractKeyValueEntry {
	b, s := i.iterator.NextMessage()
	return SerializedContractKeyValueEntryReader(b[:s])
}

func (x *SerializedStateSnapshot) RawEntriesArray() []byte {
	return x._message.RawBufferForField(2, 0)
}

func (x *SerializedStateSnapshot) RawEntriesArrayWithHeader() []byte {
	return x._message.RawBufferWithHeaderForField(2, 0)
}

func (x *SerializedStateSnapshot) StringEntries() (res string) {
	res = "["
	for i := x.EntriesIterator(); i.HasNext(); {
		res += i.NextEntries().String() + ","
	}
	res += "]"
	return
}

// builder

type SerializedStateSnapshotBuilder struct {
	FormatVersion uint32
	Height        primitives.BlockHeight
	Entries       []*SerializedContractKeyValueEntryBuilder

	// internal
	// implements membuffers.Builder
	_builder               membuffers.InternalBuilder
	_overrideWithRawBuffer []byte
}

func (w *SerializedStateSnapshotBuilder) arrayOfEntries() []membuffers.MessageWriter {
	res := make([]membuffers.MessageWriter, len(w.Entries))
	for i, v := range w.Entries {
		res[i] = v
	}
	return res
}

func (w *SerializedStateSnapshotBuilder) Write(buf []byte) (err error) {
	if w == nil {
		return
	}
	w._builder.NotifyBuildStart()
	defer w._builder.NotifyBuildEnd()
	defer func() {
		if r := recover(); r != nil {
			err = &membuffers.ErrBufferOverrun{}
		}
	}()
	if w._overrideWithRawBuffer != nil {
		return w._builder.WriteOverrideWithRawBuffer(buf, w._overrideWithRawBuffer)
	}
	w._builder.Reset()
	w._builder.WriteUint32(buf, w.FormatVersion)
	w._builder.WriteUint64(buf, uint64(w.Height))
	err = w._builder.WriteMessageArray(buf, w.arrayOfEntries())
	if err != nil {
		return
	}
	return nil
}

func (w *SerializedStateSnapshotBuilder) HexDump(prefix string, offsetFromStart membuffers.Offset) (err error) {
	if w == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err = &membuffers.ErrBufferOverrun{}
		}
	}()
	w._builder.Reset()
	w._builder.HexDumpUint32(prefix, offsetFromStart, "SerializedStateSnapshot.FormatVersion", w.FormatVersion)
	w._builder.HexDumpUint64(prefix, offsetFromStart, "SerializedStateSnapshot.Height", uint64(w.Height))
	err = w._builder.HexDumpMessageArray(prefix, offsetFromStart, "SerializedStateSnapshot.Entries", w.arrayOfEntries())
	if err != nil {
		return
	}
	return nil
}

func (w *SerializedStateSnapshotBuilder) GetSize() membuffers.Offset {
	if w == nil {
		return 0
	}
	return w._builder.GetSize()
}

func (w *SerializedStateSnapshotBuilder) CalcRequiredSize() membuffers.Offset {
	if w == nil {
		return 0
	}
	w.Write(nil)
	return w._builder.GetSize()
}

func (w *SerializedStateSnapshotBuilder) Build() *SerializedStateSnapshot {
	buf := make([]byte, w.CalcRequiredSize())
	if w.Write(buf) != nil {
		return nil
	}
	return SerializedStateSnapshotReader(buf)
}

func SerializedStateSnapshotBuilderFromRaw(raw []byte) *SerializedStateSnapshotBuilder {
	return &SerializedStateSnapshotBuilder{_overrideWithRawBuffer: raw}
}

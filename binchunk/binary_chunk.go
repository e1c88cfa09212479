package binchunk

import (
	"bytes"
	"errors"
	"math"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	TAG_NIL       = 0x00
	TAG_BOOLEAN   = 0x01
	TAG_NUMBER    = 0x03
	TAG_INTEGER   = 0x13
	TAG_SHORT_STR = 0x04
	TAG_LONG_STR  = 0x14

	VERSION   = 0.1
	SIGNATURE = `LANG_LK`
)

var headerPrefix = append([]byte{'\x1b', byte(math.Float64bits(VERSION))}, []byte(SIGNATURE)...)

var ErrBadChunk = errors.New("bad binary chunk")

// function prototype
type Prototype struct {
	Source          string        `json:"s"` // debug
	LineDefined     uint32        `json:"ld"`
	LastLineDefined uint32        `json:"lld"`
	NumParams       byte          `json:"np"`
	IsVararg        byte          `json:"iv"`
	MaxStackSize    byte          `json:"ms"`
	Code            []uint32      `json:"c"`
	Constants       []interface{} `json:"cs"`
	Upvalues        []Upvalue     `json:"us"`
	Protos          []*Prototype  `json:"ps"`
	LineInfo        []uint32      `json:"li"`  // debug
	LocVars         []LocVar      `json:"lvs"` // debug
	UpvalueNames    []string      `json:"uns"` // debug
}

type Upvalue struct {
	Instack byte `json:"is"`
	Idx     byte `json:"idx"`
}

type LocVar struct {
	VarName string `json:"vn"`
	Slot    uint32 `json:"sl"` // register this local occupies, for error-message hints
	StartPC uint32 `json:"spc"`
	EndPC   uint32 `json:"epc"`
}

// IsBinaryChunk reports whether data carries the binary chunk header.
func IsBinaryChunk(data []byte) bool {
	return bytes.HasPrefix(data, headerPrefix)
}

func (proto *Prototype) Dump() ([]byte, error) {
	data, err := json.Marshal(proto)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, headerPrefix...), data...), nil
}

// Load parses a binary chunk produced by Dump.
func Load(data []byte) (*Prototype, error) {
	if !IsBinaryChunk(data) {
		return nil, ErrBadChunk
	}
	body := data[len(headerPrefix):]
	var proto Prototype
	if err := json.Unmarshal(body, &proto); err != nil {
		return nil, ErrBadChunk
	}
	return &proto, nil
}

// Package wnet define o protocolo entre cliente e servidor do WinchWorks.
// As mensagens usam o wire format do protobuf, codificado à mão campo a campo.
package wnet

import (
	"errors"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrUnknownType é retornado ao decodificar um envelope de tipo desconhecido.
var ErrUnknownType = errors.New("wnet: tipo de mensagem desconhecido")

// fieldFunc trata um campo e retorna quantos bytes consumiu. 0 pula o campo.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func forEachField(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, b)
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
	}
	return nil
}

// Helpers de escrita; valores zero não são serializados (proto3).

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendSint(b []byte, num protowire.Number, v int32) []byte {
	return appendVarint(b, num, protowire.EncodeZigZag(int64(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	return appendVarint(b, num, protowire.EncodeBool(v))
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// Helpers de leitura. Tipo de wire errado faz o campo ser pulado.

func readVarint(typ protowire.Type, b []byte, dst *uint64) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n > 0 {
		*dst = v
	}
	return n
}

func readSint(typ protowire.Type, b []byte, dst *int32) int {
	var v uint64
	n := readVarint(typ, b, &v)
	if n > 0 {
		*dst = int32(protowire.DecodeZigZag(v))
	}
	return n
}

func readBool(typ protowire.Type, b []byte, dst *bool) int {
	var v uint64
	n := readVarint(typ, b, &v)
	if n > 0 {
		*dst = protowire.DecodeBool(v)
	}
	return n
}

func readFloat(typ protowire.Type, b []byte, dst *float32) int {
	if typ != protowire.Fixed32Type {
		return 0
	}
	v, n := protowire.ConsumeFixed32(b)
	if n > 0 {
		*dst = math.Float32frombits(v)
	}
	return n
}

func readString(typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeString(b)
	if n > 0 {
		*dst = v
	}
	return n
}

func readBytes(typ protowire.Type, b []byte, dst *[]byte) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(b)
	if n > 0 {
		*dst = append([]byte(nil), v...)
	}
	return n
}

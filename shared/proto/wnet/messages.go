package wnet

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"WinchWorks/shared/items"
	"WinchWorks/shared/util"
	"WinchWorks/shared/winch"
)

// MsgType identifica o conteúdo de um Envelope.
type MsgType uint32

const (
	MsgHello MsgType = iota + 1
	MsgInteract
	MsgWinchState
	MsgHandState
)

// Message é qualquer mensagem que pode ir dentro de um Envelope.
type Message interface {
	Type() MsgType
	Marshal() []byte
	Unmarshal(data []byte) error
}

// Envelope embrulha toda mensagem trafegada no websocket.
type Envelope struct {
	Type    MsgType
	Payload []byte
}

func (e *Envelope) Marshal() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(e.Type))
	b = appendBytes(b, 2, e.Payload)
	return b
}

func (e *Envelope) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			var v uint64
			n := readVarint(typ, b, &v)
			e.Type = MsgType(v)
			return n, nil
		case 2:
			return readBytes(typ, b, &e.Payload), nil
		}
		return 0, nil
	})
}

// Encode serializa uma mensagem já embrulhada no envelope.
func Encode(m Message) []byte {
	env := Envelope{Type: m.Type(), Payload: m.Marshal()}
	return env.Marshal()
}

// Decode abre o envelope e decodifica a mensagem concreta.
func Decode(data []byte) (Message, error) {
	var env Envelope
	if err := env.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}
	var m Message
	switch env.Type {
	case MsgHello:
		m = &Hello{}
	case MsgInteract:
		m = &Interact{}
	case MsgWinchState:
		m = &WinchState{}
	case MsgHandState:
		m = &HandState{}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, env.Type)
	}
	if err := m.Unmarshal(env.Payload); err != nil {
		return nil, fmt.Errorf("mensagem %d: %w", env.Type, err)
	}
	return m, nil
}

// Hello é a primeira mensagem do cliente.
type Hello struct {
	PlayerID string
}

func (*Hello) Type() MsgType { return MsgHello }

func (m *Hello) Marshal() []byte {
	return appendString(nil, 1, m.PlayerID)
}

func (m *Hello) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readString(typ, b, &m.PlayerID), nil
		}
		return 0, nil
	})
}

// InteractKind é a fase de uma interação com o guincho.
type InteractKind uint32

const (
	InteractStart InteractKind = iota
	InteractStep
	InteractStop
	InteractCancel
)

// Interact carrega uma fase de interação do jogador com um bloco.
type Interact struct {
	Kind         InteractKind
	PlayerID     string
	Pos          util.BlockPos
	Box          int32
	Sneak        bool
	Elapsed      float32
	CancelReason winch.CancelReason
}

func (*Interact) Type() MsgType { return MsgInteract }

func (m *Interact) Marshal() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Kind))
	b = appendString(b, 2, m.PlayerID)
	b = appendSint(b, 3, m.Pos.X)
	b = appendSint(b, 4, m.Pos.Y)
	b = appendSint(b, 5, m.Pos.Z)
	b = appendSint(b, 6, m.Box)
	b = appendBool(b, 7, m.Sneak)
	b = appendFloat(b, 8, m.Elapsed)
	b = appendVarint(b, 9, uint64(m.CancelReason))
	return b
}

func (m *Interact) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		var v uint64
		switch num {
		case 1:
			n := readVarint(typ, b, &v)
			m.Kind = InteractKind(v)
			return n, nil
		case 2:
			var s string
			n := readString(typ, b, &s)
			m.PlayerID = s
			return n, nil
		case 3:
			return readSint(typ, b, &m.Pos.X), nil
		case 4:
			return readSint(typ, b, &m.Pos.Y), nil
		case 5:
			return readSint(typ, b, &m.Pos.Z), nil
		case 6:
			return readSint(typ, b, &m.Box), nil
		case 7:
			return readBool(typ, b, &m.Sneak), nil
		case 8:
			return readFloat(typ, b, &m.Elapsed), nil
		case 9:
			n := readVarint(typ, b, &v)
			m.CancelReason = winch.CancelReason(v)
			return n, nil
		}
		return 0, nil
	})
}

// WinchState replica o estado visível de um guincho para os clientes.
type WinchState struct {
	Pos    util.BlockPos
	Facing util.Facing
	State  winch.MotionState
}

func (*WinchState) Type() MsgType { return MsgWinchState }

func (m *WinchState) Marshal() []byte {
	s := m.State
	var b []byte
	b = appendSint(b, 1, m.Pos.X)
	b = appendSint(b, 2, m.Pos.Y)
	b = appendSint(b, 3, m.Pos.Z)
	b = appendVarint(b, 4, uint64(m.Facing))
	b = appendBool(b, 5, s.IsRaising)
	b = appendBool(b, 6, s.IsTurningManually)
	b = appendBool(b, 7, s.IsTurningAutomated)
	b = appendFloat(b, 8, s.AngleRad)
	b = appendFloat(b, 9, s.BucketDepth)
	b = appendFloat(b, 10, s.MaxDepth)
	b = appendString(b, 11, string(s.RotatingPlayer))
	b = appendFloat(b, 12, s.NetworkAngle)
	b = appendVarint(b, 13, uint64(s.TurnDir))
	if s.Slot != nil {
		b = appendStack(b, 14, s.Slot)
	}
	return b
}

func (m *WinchState) Unmarshal(data []byte) error {
	s := &m.State
	return forEachField(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		var v uint64
		switch num {
		case 1:
			return readSint(typ, b, &m.Pos.X), nil
		case 2:
			return readSint(typ, b, &m.Pos.Y), nil
		case 3:
			return readSint(typ, b, &m.Pos.Z), nil
		case 4:
			n := readVarint(typ, b, &v)
			m.Facing = util.Facing(v)
			return n, nil
		case 5:
			return readBool(typ, b, &s.IsRaising), nil
		case 6:
			return readBool(typ, b, &s.IsTurningManually), nil
		case 7:
			return readBool(typ, b, &s.IsTurningAutomated), nil
		case 8:
			return readFloat(typ, b, &s.AngleRad), nil
		case 9:
			return readFloat(typ, b, &s.BucketDepth), nil
		case 10:
			return readFloat(typ, b, &s.MaxDepth), nil
		case 11:
			var p string
			n := readString(typ, b, &p)
			s.RotatingPlayer = winch.PlayerID(p)
			return n, nil
		case 12:
			return readFloat(typ, b, &s.NetworkAngle), nil
		case 13:
			n := readVarint(typ, b, &v)
			s.TurnDir = winch.RotDirection(v)
			return n, nil
		case 14:
			return readStack(typ, b, &s.Slot)
		}
		return 0, nil
	})
}

// HandState informa ao cliente o que o jogador segura.
type HandState struct {
	PlayerID string
	Item     *items.ItemStack
}

func (*HandState) Type() MsgType { return MsgHandState }

func (m *HandState) Marshal() []byte {
	b := appendString(nil, 1, m.PlayerID)
	if m.Item != nil {
		b = appendStack(b, 2, m.Item)
	}
	return b
}

func (m *HandState) Unmarshal(data []byte) error {
	return forEachField(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.PlayerID), nil
		case 2:
			return readStack(typ, b, &m.Item)
		}
		return 0, nil
	})
}

// ItemStack: 1=classe 2=código 3=quantidade 4=atributo (submensagem chave/valor) 5=conteúdo.

func appendStack(b []byte, num protowire.Number, s *items.ItemStack) []byte {
	var sb []byte
	sb = appendVarint(sb, 1, uint64(s.Class))
	sb = appendString(sb, 2, s.Code)
	sb = appendVarint(sb, 3, uint64(s.StackSize))
	for k, v := range s.Attributes {
		var kv []byte
		kv = appendString(kv, 1, k)
		kv = appendString(kv, 2, v)
		sb = protowire.AppendTag(sb, 4, protowire.BytesType)
		sb = protowire.AppendBytes(sb, kv)
	}
	if s.Contents != nil {
		sb = appendStack(sb, 5, s.Contents)
	}
	// Pilhas são sempre escritas, mesmo vazias: presença significa "slot ocupado".
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, sb)
}

func readStack(typ protowire.Type, b []byte, dst **items.ItemStack) (int, error) {
	if typ != protowire.BytesType {
		return 0, nil
	}
	raw, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	s := &items.ItemStack{}
	err := forEachField(raw, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		var v uint64
		switch num {
		case 1:
			n := readVarint(typ, b, &v)
			s.Class = items.ItemClass(v)
			return n, nil
		case 2:
			return readString(typ, b, &s.Code), nil
		case 3:
			n := readVarint(typ, b, &v)
			s.StackSize = int(v)
			return n, nil
		case 4:
			if typ != protowire.BytesType {
				return 0, nil
			}
			kv, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			var key, val string
			err := forEachField(kv, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
				switch num {
				case 1:
					return readString(typ, b, &key), nil
				case 2:
					return readString(typ, b, &val), nil
				}
				return 0, nil
			})
			if err != nil {
				return 0, err
			}
			if s.Attributes == nil {
				s.Attributes = make(map[string]string)
			}
			s.Attributes[key] = val
			return n, nil
		case 5:
			return readStack(typ, b, &s.Contents)
		}
		return 0, nil
	})
	if err != nil {
		return 0, err
	}
	*dst = s
	return n, nil
}

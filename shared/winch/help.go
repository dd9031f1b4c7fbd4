package winch

// MouseButton das dicas de interação.
type MouseButton uint8

const (
	MouseRight MouseButton = iota
	MouseLeft
)

// Códigos de idioma das dicas; a tradução fica com o cliente.
const (
	LangAddRemoveItems = "winchworks:blockhelp-winch-addremoveitems"
	LangLower          = "winchworks:blockhelp-winch-lower"
	LangRaise          = "winchworks:blockhelp-winch-raise"
	HotKeySneak        = "sneak"
)

// WorldInteraction é uma dica exibida ao mirar o guincho.
type WorldInteraction struct {
	LangCode    string
	MouseButton MouseButton
	HotKey      string
}

// InteractionHelp retorna as dicas aplicáveis à caixa mirada.
// As dicas de subir/descer só aparecem com um recipiente no slot.
func (b *BlockWinch) InteractionHelp(sel Selection) []WorldInteraction {
	if sel.Box == BoxSlot {
		return []WorldInteraction{{LangCode: LangAddRemoveItems, MouseButton: MouseRight}}
	}
	be := b.World.WinchAt(sel.Pos)
	if be == nil || be.SlotEmpty() {
		return nil
	}
	return []WorldInteraction{
		{LangCode: LangLower, MouseButton: MouseRight},
		{LangCode: LangRaise, MouseButton: MouseRight, HotKey: HotKeySneak},
	}
}

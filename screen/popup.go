package screen

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// PopupKind selects the look of a popup notification
type PopupKind int

const (
	PopupWarning PopupKind = iota
	PopupNASA
	PopupMars
	PopupError
)

// DefaultPopupDuration is how long a popup stays visible unless overridden
const DefaultPopupDuration = 10 * time.Second

var popupKindNames = [...]string{
	PopupWarning: "warning",
	PopupNASA:    "nasa",
	PopupMars:    "mars",
	PopupError:   "error",
}

func (k PopupKind) String() string {
	if k < 0 || int(k) >= len(popupKindNames) {
		return fmt.Sprintf("popup(%d)", int(k))
	}
	return popupKindNames[k]
}

func (k PopupKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(popupKindNames) {
		return nil, fmt.Errorf("screen: invalid popup kind %d", int(k))
	}
	return []byte(popupKindNames[k]), nil
}

// UnmarshalText accepts the String form; unknown names decode as PopupError
func (k *PopupKind) UnmarshalText(b []byte) error {
	for i, n := range popupKindNames {
		if n == string(b) {
			*k = PopupKind(i)
			return nil
		}
	}
	*k = PopupError
	return nil
}

// Style returns the terminal style for a popup of this kind
func (k PopupKind) Style() tcell.Style {
	base := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	switch k {
	case PopupWarning:
		return base.Background(tcell.ColorDarkOrange).Bold(true)
	case PopupNASA:
		return base.Background(tcell.ColorNavy)
	case PopupMars:
		return base.Background(tcell.ColorMaroon)
	default:
		return base.Background(tcell.ColorRed)
	}
}

// Popup is a transient, non-navigational notification
type Popup struct {
	Kind     PopupKind
	Title    string
	Message  string
	Duration time.Duration
}

// NewPopup builds a popup of the given kind with the default duration
// Kinds outside the known set produce the generic error popup
func NewPopup(kind PopupKind, message string) Popup {
	switch kind {
	case PopupWarning:
		return Warning(message)
	case PopupNASA:
		return NASA(message)
	case PopupMars:
		return Mars(message)
	default:
		return ErrorPopup(message)
	}
}

func Warning(message string) Popup {
	return Popup{Kind: PopupWarning, Title: "Warning", Message: message, Duration: DefaultPopupDuration}
}

func NASA(message string) Popup {
	return Popup{Kind: PopupNASA, Title: "NASA", Message: message, Duration: DefaultPopupDuration}
}

func Mars(message string) Popup {
	return Popup{Kind: PopupMars, Title: "Mars", Message: message, Duration: DefaultPopupDuration}
}

func ErrorPopup(message string) Popup {
	return Popup{Kind: PopupError, Title: "Error", Message: message, Duration: DefaultPopupDuration}
}

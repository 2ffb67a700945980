package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/glp360/riskscore/internal/ui/theme"
)

// OptionList renders the options of one question as radio buttons or
// checkboxes. It owns only the cursor; what is checked comes from Checked.
type OptionList struct {
	Labels  []string
	Checked []bool
	Multi   bool
	Cursor  int
}

// NewOptionList creates an option list with the cursor on the first
// checked option, or the first option.
func NewOptionList(labels []string, checked []bool, multi bool) OptionList {
	o := OptionList{Labels: labels, Checked: checked, Multi: multi}
	for i, c := range checked {
		if c {
			o.Cursor = i
			break
		}
	}
	return o
}

// Update handles cursor movement.
func (o OptionList) Update(msg tea.Msg) OptionList {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Labels)-1 {
			o.Cursor++
		}
	case "home", "g":
		o.Cursor = 0
	case "end", "G":
		if len(o.Labels) > 0 {
			o.Cursor = len(o.Labels) - 1
		}
	}
	return o
}

// IndexForKey maps the shortcut keys "1".."9" to option indexes.
func (o OptionList) IndexForKey(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	i := int(key[0] - '1')
	if i >= len(o.Labels) {
		return 0, false
	}
	return i, true
}

// View renders the list.
func (o OptionList) View() string {
	var b strings.Builder
	for i, label := range o.Labels {
		checked := i < len(o.Checked) && o.Checked[i]

		mark := "( )"
		if o.Multi {
			mark = "[ ]"
		}
		if checked {
			mark = "(•)"
			if o.Multi {
				mark = "[x]"
			}
		}

		prefix := "  "
		if i == o.Cursor {
			prefix = theme.Cursor.Render("▸ ")
		}

		line := fmt.Sprintf("%s %d. %s", mark, i+1, label)
		style := theme.Unselected
		if checked {
			style = theme.Selected
		}
		b.WriteString(prefix + style.Render(line) + "\n")
	}
	return b.String()
}

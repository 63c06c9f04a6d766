package page

import (
	"errors"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-sitegen/pkg/section"
)

// Menu class names shared with the runtime script.
const (
	ClassMenuActive = "active"
	ClassIconOpen   = "fa-bars"
	ClassIconClose  = "fa-times"
)

// ErrNoMenu is returned when the page lacks the toggle button or the header
// navigation list.
var ErrNoMenu = errors.New("page: mobile menu toggle or header navigation not found")

func (p *Page) menu() (nav, icon *goquery.Selection, err error) {
	toggle := p.doc.Find(section.SelectorMenuToggle).First()
	nav = p.doc.Find(section.SelectorHeaderNav).First()
	if toggle.Length() == 0 || nav.Length() == 0 {
		return nil, nil, ErrNoMenu
	}
	return nav, toggle.Find("i").First(), nil
}

// MenuOpen reports whether the header navigation carries the active class.
func (p *Page) MenuOpen() bool {
	nav, _, err := p.menu()
	if err != nil {
		return false
	}
	return nav.HasClass(ClassMenuActive)
}

// ToggleMenu flips the navigation visibility class and swaps the toggle icon
// to match, returning the new open state.
func (p *Page) ToggleMenu() (bool, error) {
	nav, icon, err := p.menu()
	if err != nil {
		return false, err
	}
	open := !nav.HasClass(ClassMenuActive)
	if open {
		addClass(nav, ClassMenuActive)
	} else {
		removeClass(nav, ClassMenuActive)
	}
	syncIcon(icon, open)
	return open, nil
}

// CloseMenu closes an open menu, as a click on a navigation link does. It is
// a no-op when the menu is already closed.
func (p *Page) CloseMenu() error {
	nav, icon, err := p.menu()
	if err != nil {
		return err
	}
	if !nav.HasClass(ClassMenuActive) {
		return nil
	}
	removeClass(nav, ClassMenuActive)
	syncIcon(icon, false)
	return nil
}

func syncIcon(icon *goquery.Selection, open bool) {
	if icon.Length() == 0 {
		return
	}
	if open {
		swapClass(icon, ClassIconOpen, ClassIconClose)
		return
	}
	swapClass(icon, ClassIconClose, ClassIconOpen)
}

// The helpers below rewrite the class attribute token by token so repeated
// toggles keep the original order and single-space separation.

func classList(sel *goquery.Selection) []string {
	value, _ := sel.Attr("class")
	return strings.Fields(value)
}

func setClassList(sel *goquery.Selection, list []string) {
	if len(list) == 0 {
		sel.RemoveAttr("class")
		return
	}
	sel.SetAttr("class", strings.Join(list, " "))
}

func addClass(sel *goquery.Selection, name string) {
	list := classList(sel)
	if slices.Contains(list, name) {
		return
	}
	setClassList(sel, append(list, name))
}

func removeClass(sel *goquery.Selection, name string) {
	list := classList(sel)
	out := list[:0]
	for _, c := range list {
		if c != name {
			out = append(out, c)
		}
	}
	setClassList(sel, out)
}

// swapClass replaces from with to at the same position, appending to when
// from is absent.
func swapClass(sel *goquery.Selection, from, to string) {
	list := classList(sel)
	if i := slices.Index(list, from); i >= 0 {
		list[i] = to
		list = dedupe(list)
		setClassList(sel, list)
		return
	}
	addClass(sel, to)
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, c := range list {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

package markup

// Attr names an attribute the compositor is allowed to serialise. Values are
// the internal keys used by the interchange format; Class is the only key
// whose output name differs ("className" is written as class).
type Attr string

const (
	AttrValue       Attr = "value"
	AttrHref        Attr = "href"
	AttrType        Attr = "type"
	AttrID          Attr = "id"
	AttrClass       Attr = "className"
	AttrName        Attr = "name"
	AttrOnClick     Attr = "onclick"
	AttrSrc         Attr = "src"
	AttrOnMouseOver Attr = "onmouseover"
	AttrOnBlur      Attr = "onblur"
	AttrStyle       Attr = "style"
)

// Flag names a boolean-presence attribute rendered as a bare token.
type Flag string

const (
	FlagChecked  Flag = "checked"
	FlagSelected Flag = "selected"
)

// valueAttrs is the serialisation order of value attributes. Together with
// allowedAttrs it is the complete allow-list: nothing else reaches output.
var valueAttrs = []Attr{
	AttrHref,
	AttrType,
	AttrID,
	AttrClass,
	AttrName,
	AttrValue,
	AttrOnClick,
	AttrSrc,
	AttrOnMouseOver,
	AttrOnBlur,
	AttrStyle,
}

var presenceFlags = []Flag{FlagChecked, FlagSelected}

var allowedAttrs = func() map[Attr]struct{} {
	out := make(map[Attr]struct{}, len(valueAttrs))
	for _, attr := range valueAttrs {
		out[attr] = struct{}{}
	}
	return out
}()

var allowedFlags = map[Flag]struct{}{
	FlagChecked:  {},
	FlagSelected: {},
}

var selfClosingTags = map[string]struct{}{
	"input": {},
	"br":    {},
}

// OutputName returns the attribute name written to markup.
func (a Attr) OutputName() string {
	if a == AttrClass {
		return "class"
	}
	return string(a)
}

// Allowed reports whether the attribute is part of the allow-list.
func (a Attr) Allowed() bool {
	_, ok := allowedAttrs[a]
	return ok
}

// Allowed reports whether the flag is a recognised presence attribute.
func (f Flag) Allowed() bool {
	_, ok := allowedFlags[f]
	return ok
}

// SelfClosing reports whether tag never receives a closing tag.
func SelfClosing(tag string) bool {
	_, ok := selfClosingTags[tag]
	return ok
}

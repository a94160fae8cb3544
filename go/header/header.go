package header

type (
	// Button names a stock button for the left or right slot
	Button string

	Position int

	Kind int

	Navigator interface {
		GoBack()
	}

	// NavigatorFunc adapts a function into a Navigator
	NavigatorFunc func()

	// Element is a caller built slot, used verbatim
	Element struct {
		Content string
		OnPress func()
	}

	// Slot is the input of one position. Text names a Button on the sides and is
	// the title in the center. Element wins over Text, a zero Slot stays empty.
	Slot struct {
		Text    string
		Element *Element
	}

	Props struct {
		Left   Slot
		Center Slot
		Right  Slot

		// OnBackPress replaces Navigator.GoBack for the back button
		OnBackPress func()
		Navigator   Navigator
		Theme       Theme
	}

	// Item is a resolved slot
	Item struct {
		Kind    Kind
		Label   string
		onPress func()
	}

	// View is the resolved header, it holds no state besides its props
	View struct {
		Left   Item
		Center Item
		Right  Item
		theme  Theme
	}
)

const (
	Menu Button = "menu"
	Back Button = "back"
)

const (
	Left Position = iota
	Center
	Right
)

const (
	KindEmpty Kind = iota
	KindMenu
	KindBack
	KindTitle
	KindElement
	// KindNone is an unknown button name, nothing is drawn in its place
	KindNone
)

const (
	menuIcon = "☰"
	backIcon = "←"
)

func (f NavigatorFunc) GoBack() {
	f()
}

func ButtonSlot(button Button) Slot {
	return Slot{Text: string(button)}
}

func TitleSlot(title string) Slot {
	return Slot{Text: title}
}

func ElementSlot(element Element) Slot {
	return Slot{Element: &element}
}

// Resolve turns props into the three items of the bar
func Resolve(props Props) View {
	theme := props.Theme
	if theme == (Theme{}) {
		theme = LightTheme()
	}

	return View{
		Left:   resolveButton(props.Left, props),
		Center: resolveCenter(props.Center),
		Right:  resolveButton(props.Right, props),
		theme:  theme,
	}
}

func resolveButton(slot Slot, props Props) Item {
	if slot.Element != nil {
		return elementItem(slot.Element)
	}
	if slot.Text == "" {
		return Item{Kind: KindEmpty}
	}

	switch Button(slot.Text) {
	case Menu:
		return Item{Kind: KindMenu, Label: menuIcon, onPress: func() {}}
	case Back:
		return Item{Kind: KindBack, Label: backIcon, onPress: backHandler(props)}
	}
	return Item{Kind: KindNone}
}

func resolveCenter(slot Slot) Item {
	if slot.Element != nil {
		return elementItem(slot.Element)
	}
	if slot.Text == "" {
		return Item{Kind: KindEmpty}
	}
	return Item{Kind: KindTitle, Label: slot.Text}
}

func elementItem(element *Element) Item {
	return Item{Kind: KindElement, Label: element.Content, onPress: element.OnPress}
}

func backHandler(props Props) func() {
	if props.OnBackPress != nil {
		return props.OnBackPress
	}
	if props.Navigator != nil {
		return props.Navigator.GoBack
	}
	return nil
}

func (v View) Item(position Position) Item {
	switch position {
	case Left:
		return v.Left
	case Center:
		return v.Center
	default:
		return v.Right
	}
}

// Press runs the handler of the item at position, reporting whether there was one
func (v View) Press(position Position) bool {
	onPress := v.Item(position).onPress
	if onPress == nil {
		return false
	}
	onPress()
	return true
}

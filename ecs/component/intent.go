package component

// Intent is the logical key set for one actor for one tick, independent of
// whether a human or an agent produced it. Held fields mirror raw key state;
// Pressed fields are rising edges, debounced by the producer.
type Intent struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Dodge bool

	Attack1 bool
	Attack2 bool
	Parry   bool
	Ranged1 bool
	Ranged2 bool

	Attack1Pressed bool
	Attack2Pressed bool
	ParryPressed   bool
	Ranged1Pressed bool
	Ranged2Pressed bool
	UpPressed      bool
}

// Clear resets every key. Agents call this at the start of each tick so a
// key they held last tick never sticks.
func (i *Intent) Clear() {
	*i = Intent{}
}

// MoveX collapses left/right into a -1/0/+1 axis.
func (i *Intent) MoveX() float64 {
	x := 0.0
	if i.Left {
		x -= 1
	}
	if i.Right {
		x += 1
	}
	return x
}

// MoveY collapses up/down into a -1/0/+1 axis (used only while flying).
func (i *Intent) MoveY() float64 {
	y := 0.0
	if i.Up {
		y -= 1
	}
	if i.Down {
		y += 1
	}
	return y
}

var IntentComponent = NewComponent[Intent]()

package toggler

// Slot identifies which of the two schedulers of a [Toggler] armed a task.
// The first task of a pair is always armed in [SlotOne] and the second in
// [SlotTwo].
type Slot int

const (
	SlotOne Slot = iota + 1
	SlotTwo
)

var strSlotMap = map[Slot]string{
	SlotOne: "one",
	SlotTwo: "two",
}

func (s Slot) String() string {
	if v, ok := strSlotMap[s]; ok {
		return v
	}
	return "unknown"
}

// IsValid reports whether s is one of the two slots.
func (s Slot) IsValid() bool {
	_, ok := strSlotMap[s]
	return ok
}

// MarshalText implements [encoding.TextMarshaler].
func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

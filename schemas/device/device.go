// Package device registers the "device" schema set: input reports and
// feedback messages of virtual gamepads, mice and keyboards.
package device

import (
	"github.com/Alia5/flatgen/schema"
	"github.com/Alia5/flatgen/schemas"
)

func init() {
	schemas.Register("device", Types)
}

var (
	u8  = schema.MustInt(8, false)
	i16 = schema.MustInt(16, true)
)

// MouseState: button bitfield (bit 0=Left, 1=Right, 2=Middle, 3=Back,
// 4=Forward) followed by relative motion and scroll deltas.
var MouseState = schema.MustStruct(schema.NewName("mouse", "state"),
	schema.F("buttons", u8),
	schema.F("dx", i16),
	schema.F("dy", i16),
	schema.F("wheel", i16),
	schema.F("pan", i16),
)

// Xbox360State follows XInput: 16 button bits in use, 0-255 triggers and
// signed stick axes.
var Xbox360State = schema.MustStruct(schema.NewName("xbox360", "state"),
	schema.F("buttons", schema.MustInt(32, false)),
	schema.F("lt", u8),
	schema.F("rt", u8),
	schema.F("lx", i16),
	schema.F("ly", i16),
	schema.F("rx", i16),
	schema.F("ry", i16),
	schema.F("reserved", schema.MustArray(u8, 6)),
)

var Xbox360Rumble = schema.MustStruct(schema.NewName("xbox360", "rumble"),
	schema.F("left", u8),
	schema.F("right", u8),
)

// KeyboardState lists the HID usage codes of pressed keys.
var KeyboardState = schema.MustStruct(schema.NewName("keyboard", "state"),
	schema.F("modifiers", u8),
	schema.F("keys", schema.MustVector(u8)),
)

// KeyboardLeds is the LED bitmask set by the host.
var KeyboardLeds = schema.MustStruct(schema.NewName("keyboard", "leds"),
	schema.F("leds", u8),
)

// Types builds the set: one message variant per direction.
func Types() ([]schema.Type, error) {
	input, err := schema.NewVariant(schema.NewName("input", "report"), []schema.Field{
		schema.F("mouse", MouseState),
		schema.F("xbox360", Xbox360State),
		schema.F("keyboard", KeyboardState),
	})
	if err != nil {
		return nil, err
	}
	feedback, err := schema.NewVariant(schema.NewName("feedback"), []schema.Field{
		schema.F("rumble", Xbox360Rumble),
		schema.F("leds", KeyboardLeds),
	}, schema.WithSized(true))
	if err != nil {
		return nil, err
	}
	return []schema.Type{input, feedback}, nil
}

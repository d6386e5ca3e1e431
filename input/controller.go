package input

import "math"

// Button identifies a digital controller input
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonGuide
	ButtonBack
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonDPadUp
	ButtonDPadDown
	ButtonDPadLeft
	ButtonDPadRight
	buttonCount
)

// Axis identifies an analog controller input
type Axis uint8

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisTriggerLeft
	AxisTriggerRight
	axisCount
)

// AxisMax is the full-scale axis value; negative Y points up
const AxisMax = math.MaxInt16

// ControllerState is a snapshot of one virtual gamepad
type ControllerState struct {
	ID      int
	buttons [buttonCount]bool
	axes    [axisCount]int16
}

func (c *ControllerState) SetButton(b Button, down bool) {
	if b < buttonCount {
		c.buttons[b] = down
	}
}

func (c *ControllerState) Button(b Button) bool {
	return b < buttonCount && c.buttons[b]
}

func (c *ControllerState) SetAxis(a Axis, v int16) {
	if a < axisCount {
		c.axes[a] = v
	}
}

func (c *ControllerState) Axis(a Axis) int16 {
	if a >= axisCount {
		return 0
	}
	return c.axes[a]
}

// Reset releases every button and centers every axis
func (c *ControllerState) Reset() {
	c.buttons = [buttonCount]bool{}
	c.axes = [axisCount]int16{}
}

// ApplyDeadzone zeroes v inside [-deadzone, deadzone] and rescales the rest to full range
func ApplyDeadzone(v int16, deadzone int) int16 {
	if deadzone <= 0 {
		return v
	}
	if deadzone >= AxisMax {
		return 0
	}
	mag := int(v)
	sign := 1
	if mag < 0 {
		mag, sign = -mag, -1
	}
	if mag <= deadzone {
		return 0
	}
	if mag > AxisMax {
		mag = AxisMax
	}
	scaled := (mag - deadzone) * AxisMax / (AxisMax - deadzone)
	return int16(sign * scaled)
}

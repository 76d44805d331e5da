package types

// Retained bus state published by the control loop on "state/*" topics.

type TimeState struct {
	Hours      uint8 `json:"hh"`
	Minutes    uint8 `json:"mm"`
	Seconds    uint8 `json:"ss"`
	Hundredths uint8 `json:"cc"`
}

type DateState struct {
	Day   uint8  `json:"day"`
	Month uint8  `json:"month"`
	Year  uint16 `json:"year"`
}

type ModeState struct {
	Mode string `json:"mode"` // "clock", "calendar", "calculator"
}

type CalcState struct {
	Working  int64  `json:"working"`
	Pending  string `json:"pending,omitempty"` // "add", "sub", "mul", "div"
	Entering bool   `json:"entering"`
	Error    string `json:"error,omitempty"` // errcode short code
}

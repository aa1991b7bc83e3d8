// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

// RegisterInfo describes one register for the debug tool.
type RegisterInfo struct {
	Address     string     `json:"address"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Access      string     `json:"access"` // "R", "W", "RW"
	Default     string     `json:"default,omitempty"`
	BitFields   []BitField `json:"bit_fields,omitempty"`
}

// BitField describes one named bit range inside a register.
type BitField struct {
	Bits        string `json:"bits"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Values      string `json:"values,omitempty"`
}

// GetAS5600RegisterMap returns metadata for all AS5600 registers.
// This provides register names, descriptions, access types, and bit field definitions.
func GetAS5600RegisterMap() []RegisterInfo {
	return []RegisterInfo{
		// Configuration Registers
		{Address: "0x00", Name: "ZMCO", Description: "Burn Count (ZPOS/MPOS writes used)", Access: "R", Default: "0x00",
			BitFields: []BitField{
				{Bits: "1:0", Name: "ZMCO", Description: "Number of times ZPOS/MPOS have been permanently written", Values: "0-3"},
			}},
		{Address: "0x01", Name: "ZPOS_H", Description: "Zero Position High Byte", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "3:0", Name: "ZPOS[11:8]", Description: "Start position, upper bits", Values: "0-15"},
			}},
		{Address: "0x02", Name: "ZPOS_L", Description: "Zero Position Low Byte", Access: "RW", Default: "0x00"},
		{Address: "0x03", Name: "MPOS_H", Description: "Maximum Position High Byte", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "3:0", Name: "MPOS[11:8]", Description: "Stop position, upper bits", Values: "0-15"},
			}},
		{Address: "0x04", Name: "MPOS_L", Description: "Maximum Position Low Byte", Access: "RW", Default: "0x00"},
		{Address: "0x05", Name: "MANG_H", Description: "Maximum Angle High Byte", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "3:0", Name: "MANG[11:8]", Description: "Angular range, upper bits", Values: "0-15"},
			}},
		{Address: "0x06", Name: "MANG_L", Description: "Maximum Angle Low Byte", Access: "RW", Default: "0x00"},
		{Address: "0x07", Name: "CONF_H", Description: "Configuration High Byte", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "5", Name: "WD", Description: "Watchdog", Values: "0=Off, 1=Auto low power"},
				{Bits: "4:2", Name: "FTH", Description: "Fast Filter Threshold", Values: "0=Slow filter only, 1=6 LSB ... 7=10 LSB"},
				{Bits: "1:0", Name: "SF", Description: "Slow Filter", Values: "0=16x (2.2ms), 1=8x (1.1ms), 2=4x (0.55ms), 3=2x (0.286ms)"},
			}},
		{Address: "0x08", Name: "CONF_L", Description: "Configuration Low Byte", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:6", Name: "PWMF", Description: "PWM Frequency", Values: "0=115Hz, 1=230Hz, 2=460Hz, 3=920Hz"},
				{Bits: "5:4", Name: "OUTS", Description: "Output Stage", Values: "0=Analog full, 1=Analog reduced, 2=PWM"},
				{Bits: "3:2", Name: "HYST", Description: "Hysteresis", Values: "0=Off, 1=1 LSB, 2=2 LSB, 3=3 LSB"},
				{Bits: "1:0", Name: "PM", Description: "Power Mode", Values: "0=NOM, 1=LPM1, 2=LPM2, 3=LPM3"},
			}},

		// Output Registers (Read-Only)
		{Address: "0x0C", Name: "RAWANGLE_H", Description: "Unfiltered Angle High Byte", Access: "R",
			BitFields: []BitField{
				{Bits: "3:0", Name: "RAWANGLE[11:8]", Description: "Raw angle, upper bits", Values: "0-15"},
			}},
		{Address: "0x0D", Name: "RAWANGLE_L", Description: "Unfiltered Angle Low Byte", Access: "R"},
		{Address: "0x0E", Name: "ANGLE_H", Description: "Scaled Angle High Byte (ZPOS/MPOS applied)", Access: "R",
			BitFields: []BitField{
				{Bits: "3:0", Name: "ANGLE[11:8]", Description: "Scaled angle, upper bits", Values: "0-15"},
			}},
		{Address: "0x0F", Name: "ANGLE_L", Description: "Scaled Angle Low Byte", Access: "R"},

		// Status Registers (Read-Only)
		{Address: "0x0B", Name: "STATUS", Description: "Magnet Status", Access: "R", Default: "0x00",
			BitFields: []BitField{
				{Bits: "5", Name: "MD", Description: "Magnet detected", Values: "1=Magnet present"},
				{Bits: "4", Name: "ML", Description: "Magnet too weak (AGC at maximum gain)", Values: "1=Increase magnet or reduce airgap"},
				{Bits: "3", Name: "MH", Description: "Magnet too strong (AGC at minimum gain)", Values: "1=Weaken magnet or increase airgap"},
			}},
		{Address: "0x1A", Name: "AGC", Description: "Automatic Gain Control", Access: "R",
			BitFields: []BitField{
				{Bits: "7:0", Name: "AGC", Description: "Gain value; mid-range indicates a good airgap", Values: "0-255 (5V), 0-128 (3.3V)"},
			}},
		{Address: "0x1B", Name: "MAGNITUDE_H", Description: "CORDIC Magnitude High Byte", Access: "R",
			BitFields: []BitField{
				{Bits: "3:0", Name: "MAGNITUDE[11:8]", Description: "Field magnitude, upper bits", Values: "0-15"},
			}},
		{Address: "0x1C", Name: "MAGNITUDE_L", Description: "CORDIC Magnitude Low Byte", Access: "R"},
	}
}

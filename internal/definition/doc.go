// Package definition loads calendar definitions written in CUE or YAML and
// registers them on a calendar.
//
// A definition names zero or more presets and lists events. Every document is
// unified with the embedded #Definition schema before it is decoded, so a
// definition that loads without error only fails later on registry rules
// (duplicate names, calculated names without a formula).
//
//	name: "Acme Trading Desk"
//	presets: ["nyse"]
//	events: [{
//		name:    "Company Picnic"
//		kind:    "yearly_weekday_forward"
//		month:   6
//		weekday: "friday"
//		n:       2
//		day_off: true
//	}]
package definition

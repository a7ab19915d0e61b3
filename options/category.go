package options

// CategoryEnum selects which textual representations a configuration value
// may use when it is converted into a typed leaf value.
type CategoryEnum int

const (
	CategoryTextNumber  CategoryEnum = 1 << iota // string -> int, uint, float: textual number representation
	CategoryNumericBool                          // string -> bool: 0, 1 representation of boolean values
	CategoryTextualBool                          // string -> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                             // string(RFC3339Nano) -> time.Time: textual date and time representation
	CategoryTimestamp                            // string(Unix seconds) -> time.Time: Unix timestamp representation
	CategoryDuration                             // string(2h45m) -> time.Duration: textual duration representation
	CategoryNanoseconds                          // string(nanoseconds) -> time.Duration: numerical (integer) duration representation
	CategorySeconds                              // string(seconds) -> time.Duration: numerical (floating-point) duration representation
	CategoryEnumString                           // string -> enum: member name or value of an enum type (uses Values/String methods)
	CategoryTextMarshaler                        // string -> encoding.TextUnmarshaler implementations

	CategoryAll  = (1 << iota) - 1 //all categories combined
	CategoryNone = 0               // no categories selected
)

// Has reports whether every category of other is enabled in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return c&other == other
}

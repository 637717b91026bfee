package codes

// UnitCode is a unit of measure from UNECE/CEFACT Trade Facilitation
// Recommendations No. 20 and No. 21.
type UnitCode string

const (
	UnitOne         UnitCode = "C62" // "unit"
	UnitPiece       UnitCode = "H87" // "item"
	UnitHour        UnitCode = "HUR"
	UnitDay         UnitCode = "DAY"
	UnitWeek        UnitCode = "WEE"
	UnitMonth       UnitCode = "MON"
	UnitYear        UnitCode = "ANN"
	UnitLiter       UnitCode = "LTR"
	UnitCubicMeter  UnitCode = "MTQ"
	UnitSquareMeter UnitCode = "MTK"
	UnitGram        UnitCode = "GRM"
	UnitKilogram    UnitCode = "KGM"
	UnitTon         UnitCode = "TNE"
	UnitMeter       UnitCode = "MTR"
	UnitKilometer   UnitCode = "KMT"
	UnitKWH         UnitCode = "KWH"
	UnitPair        UnitCode = "PR"
	UnitSet         UnitCode = "SET"
)

var units = map[UnitCode]struct{}{
	UnitOne: {}, UnitPiece: {}, UnitHour: {}, UnitDay: {}, UnitWeek: {},
	UnitMonth: {}, UnitYear: {}, UnitLiter: {}, UnitCubicMeter: {},
	UnitSquareMeter: {}, UnitGram: {}, UnitKilogram: {}, UnitTon: {},
	UnitMeter: {}, UnitKilometer: {}, UnitKWH: {}, UnitPair: {}, UnitSet: {},
}

// ValidUnit reports whether code is a recognized Rec 20/21 unit code.
func ValidUnit(code UnitCode) bool {
	_, ok := units[code]
	return ok
}

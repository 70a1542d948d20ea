package domain

// Polyline - упорядоченная последовательность координат.
type Polyline []Coordinate

// StreetGeometry - геометрия одной улицы. Улица может состоять из нескольких несвязанных отрезков.
type StreetGeometry struct {
	Name     string     `json:"name"`
	Segments []Polyline `json:"segments"`
}

// GeometryStatus - состояние загрузки геометрии улиц.
type GeometryStatus string

const (
	GeometryIdle    GeometryStatus = "idle"
	GeometryLoading GeometryStatus = "loading"
	GeometryReady   GeometryStatus = "ready"
	GeometryError   GeometryStatus = "error"
)

// GeometryLoadState - размеченное объединение: Data заполнена только в ready, Error - только в error.
type GeometryLoadState struct {
	Status GeometryStatus   `json:"status"`
	Data   []StreetGeometry `json:"data"`
	Error  string           `json:"error,omitempty"`
}

func IdleGeometry() GeometryLoadState {
	return GeometryLoadState{Status: GeometryIdle, Data: []StreetGeometry{}}
}

func LoadingGeometry() GeometryLoadState {
	return GeometryLoadState{Status: GeometryLoading, Data: []StreetGeometry{}}
}

func ReadyGeometry(data []StreetGeometry) GeometryLoadState {
	if data == nil {
		data = []StreetGeometry{}
	}
	return GeometryLoadState{Status: GeometryReady, Data: data}
}

func FailedGeometry(message string) GeometryLoadState {
	return GeometryLoadState{Status: GeometryError, Data: []StreetGeometry{}, Error: message}
}

// CanLoad: загрузку можно начать из idle и из error, но не из loading и ready.
func (s GeometryLoadState) CanLoad() bool {
	return s.Status == GeometryIdle || s.Status == GeometryError
}

package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers
func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func PropertyID(id string) Field {
	return String("property_id", id)
}

func OpportunityID(id string) Field {
	return String("opportunity_id", id)
}

func PropertyCount(n int) Field {
	return Int("property_count", n)
}

func Score(s float64) Field {
	return Float64("score", s)
}

func Grade(g string) Field {
	return String("grade", g)
}

func Constraint(name string) Field {
	return String("constraint", name)
}

func RadiusMiles(r float64) Field {
	return Float64("radius_miles", r)
}

func Coordinates(lat, lng float64) Field {
	return Field{Key: "coordinates", Value: [2]float64{lat, lng}}
}

func Path(p string) Field {
	return String("path", p)
}

package simulator

import (
	"math/rand"
)

const VEHICLE = "d126"

var LABELS = []string{"time", "rpm", "power", "voltage", "temp", "current"}

type Payload struct {
	Vehicle      string         `json:"vehicle"`
	TestID       float64        `json:"testid"`
	EscID        int            `json:"escid"`
	Params       Params         `json:"params"`
	Measurements Measurements   `json:"measurements"`
	Labels       []string       `json:"labels"`
	UOM          UnitsOfMeasure `json:"uom"`
}

type Params struct {
	Power  int    `json:"power"`
	Config Config `json:"config"`
	Step   *int   `json:"step"` // nil unless running stepwise
}

type Measurements struct {
	Time    int     `json:"time"`
	RPM     int     `json:"rpm"`
	Power   int     `json:"power"`
	Voltage float64 `json:"voltage"`
	Temp    float64 `json:"temp"`
	Current float64 `json:"current"`
}

type UnitsOfMeasure struct {
	Time    string `json:"time"`
	RPM     string `json:"rpm"`
	Power   string `json:"power"`
	Voltage string `json:"voltage"`
	Temp    string `json:"temp"`
	Current string `json:"current"`
}

var DefaultUOM = UnitsOfMeasure{
	Time:    "sec",
	RPM:     "rpm",
	Power:   "%",
	Voltage: "V",
	Temp:    "°C",
	Current: "Amps",
}

// Returns a random sample for the ESC identified by count at time index tsIdx
func GenerateData(rng *rand.Rand, testID float64, tsIdx int, count int, power int, config Config, step *int) Payload {
	return Payload{
		Vehicle: VEHICLE,
		TestID:  testID,
		EscID:   count,
		Params: Params{
			Power:  power,
			Config: config,
			Step:   step,
		},
		Measurements: Measurements{
			Time:    tsIdx,
			RPM:     randInt(rng, 0, 5000),
			Power:   randInt(rng, 10, 100),
			Voltage: uniform(rng, 0.1, 5.9),
			Temp:    uniform(rng, 35, 45),
			Current: uniform(rng, -0.01, 0.1),
		},
		Labels: append([]string(nil), LABELS...),
		UOM:    DefaultUOM,
	}
}

// Random integer in [lo, hi]
func randInt(rng *rand.Rand, lo int, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// Random float in [lo, hi)
func uniform(rng *rand.Rand, lo float64, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

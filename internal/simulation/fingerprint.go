package simulation

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"inventory-twin/internal/model"
)

// Fingerprint builds a deterministic cache key for one run: the series
// (periods and raw quantity bits), the scenario tuple and the engine
// constants. Equal inputs always hash to the same key.
func Fingerprint(history model.HistoricalSeries, s model.Scenario, e *Engine) string {
	h := sha256.New()
	var buf [8]byte

	putInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	putBool := func(v bool) {
		if v {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}

	putInt(int64(len(history)))
	for _, o := range history {
		putInt(o.Period.UnixNano())
		putFloat(o.Quantity)
	}

	putInt(int64(s.Horizon))
	putBool(s.SupplyCut)
	putBool(s.DemandSpike)
	putBool(s.ReserveRelease)

	if e != nil {
		putInt(int64(e.Window))
		putFloat(e.Effects.SupplyCut.Base)
		putFloat(e.Effects.SupplyCut.Growth)
		putFloat(e.Effects.DemandSpike.Base)
		putFloat(e.Effects.DemandSpike.Growth)
		putFloat(e.Effects.ReleasePerPeriod)
		putFloat(e.Effects.Floor)
		putInt(int64(e.Effects.Cadence))
	}

	return hex.EncodeToString(h.Sum(nil))
}

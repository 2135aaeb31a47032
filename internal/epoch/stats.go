package epoch

// EpochStats is the per-epoch payload handed to the stats callback
// (§6.2): one scalar field per named value. Only one value of each is
// produced per epoch; the field names mirror the spec's name/value
// pairs so a caller logging multiple epochs can append into columns.
type EpochStats struct {
	Steps   int
	Freq    int
	VMC     uint32
	Score0  int
	ScoreHF int
	ScoreLF int
	Total   uint64
}

// StatsCallback receives one EpochStats per processed epoch. Optional;
// a nil callback disables stats entirely (§4.12's init contract).
type StatsCallback func(EpochStats)

package mbevts

import (
	"fmt"
	"math"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// WindowSummary is one row of the run catalogue.
type WindowSummary struct {
	RunNumber uint32 `db:"run_number"`
	Window    int    `db:"window_id"`
	File      string `db:"file"`
	EBIS      int64  `db:"ebis"`
	T1        int64  `db:"t1"`
	NGamma    int    `db:"n_gamma"`
	NGammaAb  int    `db:"n_gamma_ab"`
	NParticle int    `db:"n_particle"`
	NBeamDump int    `db:"n_beamdump"`
	NSpede    int    `db:"n_spede"`
}

// Catalog keeps a per-window summary of every file written, so runs can be
// searched without opening the HDF5 files.
type Catalog struct {
	db *sqlx.DB
}

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

func NewCatalog(db *sqlx.DB) *Catalog {
	return &Catalog{db: db}
}

// OpenCatalog connects to a catalogue with the given driver ("mysql" or "sqlite").
func OpenCatalog(driver string, dsn string) (*Catalog, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to %s catalog: %w", driver, err)
	}
	return NewCatalog(db), nil
}

const createWindowsTable = `CREATE TABLE IF NOT EXISTS windows (
	run_number INTEGER NOT NULL,
	window_id  INTEGER NOT NULL,
	file       VARCHAR(255) NOT NULL,
	ebis       BIGINT NOT NULL,
	t1         BIGINT NOT NULL,
	n_gamma    INTEGER NOT NULL,
	n_gamma_ab INTEGER NOT NULL,
	n_particle INTEGER NOT NULL,
	n_beamdump INTEGER NOT NULL,
	n_spede    INTEGER NOT NULL,
	PRIMARY KEY (run_number, window_id)
)`

func (c *Catalog) Init() error {
	if _, err := c.db.Exec(createWindowsTable); err != nil {
		return fmt.Errorf("error creating windows table: %w", err)
	}
	return nil
}

// RecordWindow stores the summary of one window. EBIS and T1 are kept in
// signed BIGINT columns, so marks above math.MaxInt64 are rejected.
func (c *Catalog) RecordWindow(runNumber uint32, window int, file string, evts *MiniballEvts) error {
	if evts.GetEBIS() > math.MaxInt64 || evts.GetT1() > math.MaxInt64 {
		return fmt.Errorf("window %d of run %d: EBIS %d or T1 %d out of catalog range", window, runNumber, evts.GetEBIS(), evts.GetT1())
	}
	summary := WindowSummary{
		RunNumber: runNumber,
		Window:    window,
		File:      file,
		EBIS:      int64(evts.GetEBIS()),
		T1:        int64(evts.GetT1()),
		NGamma:    evts.GetGammaRayMultiplicity(),
		NGammaAb:  evts.GetGammaRayAddbackMultiplicity(),
		NParticle: evts.GetParticleMultiplicity(),
		NBeamDump: evts.GetBeamDumpMultiplicity(),
		NSpede:    evts.GetSpedeMultiplicity(),
	}
	query := `INSERT INTO windows (run_number, window_id, file, ebis, t1, n_gamma, n_gamma_ab, n_particle, n_beamdump, n_spede)
		VALUES (:run_number, :window_id, :file, :ebis, :t1, :n_gamma, :n_gamma_ab, :n_particle, :n_beamdump, :n_spede)`
	if _, err := c.db.NamedExec(query, summary); err != nil {
		return fmt.Errorf("error recording window %d of run %d: %w", window, runNumber, err)
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Window %d of run %d recorded in catalog", window, runNumber)
		logger.Info(message, "catalog")
	}
	return nil
}

// Windows returns the catalogued windows of a run ordered by window index.
func (c *Catalog) Windows(runNumber uint32) ([]WindowSummary, error) {
	query := c.db.Rebind("SELECT run_number, window_id, file, ebis, t1, n_gamma, n_gamma_ab, n_particle, n_beamdump, n_spede FROM windows WHERE run_number = ? ORDER BY window_id")
	rows, err := c.db.Queryx(query, runNumber)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	summaries := make([]WindowSummary, 0)
	for rows.Next() {
		result := WindowSummary{}
		if err := rows.StructScan(&result); err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		summaries = append(summaries, result)
	}
	return summaries, rows.Err()
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

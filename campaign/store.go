// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/danielhkuo/kindly-fund/models"
)

// errDuplicateVote is the storage-level dedup signal: the vote table's
// unique constraint fired. The ledger maps it to AlreadyVotedError.
var errDuplicateVote = errors.New("duplicate vote")

// Store is the persistence collaborator for the campaign engine: raw SQL
// over Postgres. Multi-row writes (selection batches, period completion,
// vote recording) run inside explicit transactions; everything else is a
// single atomic statement.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Filter narrows application queries. Zero values mean "any".
type Filter struct {
	Status   string
	PeriodID string
}

const applicationColumns = "id, description, amount, country, contact, status, votes_count, period_id, created_at"

func scanApplication(row interface{ Scan(...any) error }) (*models.Application, error) {
	var app models.Application
	var periodID sql.NullString
	err := row.Scan(&app.ID, &app.Description, &app.Amount, &app.Country, &app.Contact,
		&app.Status, &app.VotesCount, &periodID, &app.CreatedAt)
	if err != nil {
		return nil, err
	}
	if periodID.Valid {
		app.PeriodID = &periodID.String
	}
	return &app, nil
}

// CreateApplication persists a freshly validated application.
func (s *Store) CreateApplication(app *models.Application) error {
	_, err := s.db.Exec(`
		INSERT INTO application (id, description, amount, country, contact, status, votes_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, app.ID, app.Description, app.Amount, app.Country, app.Contact, app.Status, app.VotesCount, app.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// GetApplication returns ErrNotFound for an unknown id.
func (s *Store) GetApplication(id string) (*models.Application, error) {
	row := s.db.QueryRow(`SELECT `+applicationColumns+` FROM application WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query application: %w", err)
	}
	return app, nil
}

// FindApplications lists applications matching the filter. SELECTED queries
// come back ordered by tally desc (id asc as tie-break) for ballot display;
// everything else is oldest-first.
func (s *Store) FindApplications(f Filter) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM application WHERE 1=1`
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.PeriodID != "" {
		args = append(args, f.PeriodID)
		query += fmt.Sprintf(" AND period_id = $%d", len(args))
	}
	if f.Status == models.StatusSelected {
		query += " ORDER BY votes_count DESC, id ASC"
	} else {
		query += " ORDER BY created_at ASC, id ASC"
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// UpdateApplicationStatus sets only the status, leaving the period binding
// untouched. Returns ErrNotFound for an unknown id.
func (s *Store) UpdateApplicationStatus(id, status string) (*models.Application, error) {
	row := s.db.QueryRow(`
		UPDATE application SET status = $1 WHERE id = $2
		RETURNING `+applicationColumns+`
	`, status, id)
	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return app, nil
}

// BatchUpdateApplications flips all given ids to the status and period in
// one transaction. All-or-nothing: if any id is missing the whole batch
// rolls back.
func (s *Store) BatchUpdateApplications(ids []string, status, periodID string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE application SET status = $1, period_id = $2
		WHERE id = ANY($3)
	`, status, periodID, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to batch update applications: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if int(n) != len(ids) {
		return 0, fmt.Errorf("batch update touched %d of %d applications", n, len(ids))
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit batch update: %w", err)
	}
	return int(n), nil
}

const periodColumns = "id, start_date, end_date, status, winner_id, created_at"

func scanPeriod(row interface{ Scan(...any) error }) (*models.VotingPeriod, error) {
	var p models.VotingPeriod
	var winnerID sql.NullString
	err := row.Scan(&p.ID, &p.StartDate, &p.EndDate, &p.Status, &winnerID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if winnerID.Valid {
		p.WinnerID = &winnerID.String
	}
	return &p, nil
}

// FindActivePeriod returns the period currently collecting or voting, or
// (nil, nil) when there is none.
func (s *Store) FindActivePeriod() (*models.VotingPeriod, error) {
	row := s.db.QueryRow(`
		SELECT ` + periodColumns + ` FROM voting_period
		WHERE status IN ('COLLECTING', 'VOTING')
	`)
	p, err := scanPeriod(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active period: %w", err)
	}
	return p, nil
}

// GetPeriod returns ErrNotFound for an unknown id.
func (s *Store) GetPeriod(id string) (*models.VotingPeriod, error) {
	row := s.db.QueryRow(`SELECT `+periodColumns+` FROM voting_period WHERE id = $1`, id)
	p, err := scanPeriod(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query period: %w", err)
	}
	return p, nil
}

// CreatePeriod inserts a new period. The partial unique index on active
// statuses makes this race-safe: the loser of a concurrent create gets
// ErrActivePeriodExists instead of a second active period.
func (s *Store) CreatePeriod(p *models.VotingPeriod) error {
	_, err := s.db.Exec(`
		INSERT INTO voting_period (id, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.StartDate, p.EndDate, p.Status, p.CreatedAt)
	if isUniqueViolation(err) {
		return ErrActivePeriodExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert period: %w", err)
	}
	return nil
}

// UpdatePeriodStatus sets the period status. Returns ErrNotFound for an
// unknown id.
func (s *Store) UpdatePeriodStatus(id, status string) (*models.VotingPeriod, error) {
	row := s.db.QueryRow(`
		UPDATE voting_period SET status = $1 WHERE id = $2
		RETURNING `+periodColumns+`
	`, status, id)
	p, err := scanPeriod(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update period status: %w", err)
	}
	return p, nil
}

// FindVoteToday returns this visitor's vote for the given period and UTC
// day, or (nil, nil) when they have not voted yet.
func (s *Store) FindVoteToday(visitorHash, periodID, voteDay string) (*models.Vote, error) {
	var v models.Vote
	err := s.db.QueryRow(`
		SELECT id, visitor_hash, application_id, period_id, to_char(vote_day, 'YYYY-MM-DD'), created_at
		FROM vote
		WHERE visitor_hash = $1 AND period_id = $2 AND vote_day = $3
	`, visitorHash, periodID, voteDay).Scan(
		&v.ID, &v.VisitorHash, &v.ApplicationID, &v.PeriodID, &v.VoteDay, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vote: %w", err)
	}
	return &v, nil
}

// RecordVote inserts the vote and increments the target's tally in a single
// transaction. The unique constraint on (visitor_hash, period_id, vote_day)
// is the authoritative dedup check: a concurrent duplicate surfaces here as
// errDuplicateVote and nothing is incremented. The increment is guarded by
// status = SELECTED so a target that left the ballot mid-flight fails the
// whole transaction with ErrIneligibleTarget.
func (s *Store) RecordVote(v *models.Vote) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO vote (id, visitor_hash, application_id, period_id, vote_day, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, v.ID, v.VisitorHash, v.ApplicationID, v.PeriodID, v.VoteDay, v.CreatedAt)
	if isUniqueViolation(err) {
		return errDuplicateVote
	}
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	res, err := tx.Exec(`
		UPDATE application SET votes_count = votes_count + 1
		WHERE id = $1 AND status = $2 AND period_id = $3
	`, v.ApplicationID, models.StatusSelected, v.PeriodID)
	if err != nil {
		return fmt.Errorf("failed to increment votes: %w", err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		return ErrIneligibleTarget
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

// CompletePeriod finalizes a voting period as one atomic unit: the
// top-tally SELECTED application becomes WINNER and is recorded on the
// period, every other SELECTED application returns to the APPROVED pool
// with its period binding cleared, and the period flips to COMPLETED.
// Tie-break is deterministic: highest tally first, then ascending id.
func (s *Store) CompletePeriod(periodID string) (*models.VotingPeriod, *models.Application, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+periodColumns+` FROM voting_period WHERE id = $1 FOR UPDATE`, periodID)
	period, err := scanPeriod(row)
	if err == sql.ErrNoRows {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock period: %w", err)
	}
	if period.Status != models.PeriodVoting {
		return nil, nil, ErrInvalidTransition
	}

	row = tx.QueryRow(`
		SELECT `+applicationColumns+` FROM application
		WHERE period_id = $1 AND status = $2
		ORDER BY votes_count DESC, id ASC
		LIMIT 1
		FOR UPDATE
	`, periodID, models.StatusSelected)
	winner, err := scanApplication(row)
	if err != nil && err != sql.ErrNoRows {
		return nil, nil, fmt.Errorf("failed to query winner: %w", err)
	}

	if winner != nil {
		if _, err := tx.Exec(`
			UPDATE application SET status = $1 WHERE id = $2
		`, models.StatusWinner, winner.ID); err != nil {
			return nil, nil, fmt.Errorf("failed to set winner: %w", err)
		}
		winner.Status = models.StatusWinner
	}

	// Everyone else returns to the eligible pool for a future round.
	if _, err := tx.Exec(`
		UPDATE application SET status = $1, period_id = NULL, votes_count = 0
		WHERE period_id = $2 AND status = $3
	`, models.StatusApproved, periodID, models.StatusSelected); err != nil {
		return nil, nil, fmt.Errorf("failed to reset non-winners: %w", err)
	}

	var winnerID any
	if winner != nil {
		winnerID = winner.ID
	}
	row = tx.QueryRow(`
		UPDATE voting_period SET status = $1, winner_id = $2 WHERE id = $3
		RETURNING `+periodColumns+`
	`, models.PeriodCompleted, winnerID, periodID)
	period, err = scanPeriod(row)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to complete period: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit period completion: %w", err)
	}
	return period, winner, nil
}

// CountApplications counts applications in the given status ("" = all).
func (s *Store) CountApplications(status string) (int, error) {
	var n int
	var err error
	if status == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM application`).Scan(&n)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM application WHERE status = $1`, status).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return n, nil
}

// CountVotes counts vote records, optionally scoped to a period.
func (s *Store) CountVotes(periodID string) (int, error) {
	var n int
	var err error
	if periodID == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM vote`).Scan(&n)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM vote WHERE period_id = $1`, periodID).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}

// CountryBreakdown returns the top countries by application count.
func (s *Store) CountryBreakdown(limit int) ([]models.CountryCount, error) {
	rows, err := s.db.Query(`
		SELECT country, COUNT(*) FROM application
		GROUP BY country ORDER BY COUNT(*) DESC, country ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query country breakdown: %w", err)
	}
	defer rows.Close()

	counts := []models.CountryCount{}
	for rows.Next() {
		var c models.CountryCount
		if err := rows.Scan(&c.Country, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan country count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CompletedPeriods returns the most recently finished periods, newest first.
func (s *Store) CompletedPeriods(limit int) ([]models.VotingPeriod, error) {
	rows, err := s.db.Query(`
		SELECT `+periodColumns+` FROM voting_period
		WHERE status = $1
		ORDER BY end_date DESC
		LIMIT $2
	`, models.PeriodCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed periods: %w", err)
	}
	defer rows.Close()

	periods := []models.VotingPeriod{}
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		periods = append(periods, *p)
	}
	return periods, rows.Err()
}

// RecentApplications returns the newest submissions, newest first.
func (s *Store) RecentApplications(limit int) ([]models.Application, error) {
	rows, err := s.db.Query(`
		SELECT `+applicationColumns+` FROM application
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// PublicStats aggregates totals for the public landing page.
func (s *Store) PublicStats(now time.Time) (*models.PublicStatsResponse, error) {
	var stats models.PublicStatsResponse
	err := s.db.QueryRow(`
		SELECT COUNT(*), COUNT(DISTINCT country), COALESCE(SUM(amount), 0)
		FROM application
	`).Scan(&stats.TotalApplications, &stats.TotalCountries, &stats.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to query public stats: %w", err)
	}
	stats.LastUpdated = now
	return &stats, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

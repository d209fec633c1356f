package database

import (
	"database/sql"
	"sync"

	_ "github.com/joho/godotenv/autoload"
	_ "github.com/mattn/go-sqlite3"
)

// Service is the sqlite-backed results store used by the dev server.
type Service struct {
	db        *sql.DB
	m         *sync.Mutex
	tableName string
}

var tableName = "match_results"

// New opens (or creates) the results database at path.
func New(path string) (*Service, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	sqlStmt := `
	create table if not exists match_results (
		id string not null primary key,
		created_at string,
		game string,
		players string,
		winner_seat integer,
		team1_score integer,
		team2_score integer,
		rounds integer
	);
	`
	if _, err = db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, err
	}

	return &Service{
		db:        db,
		tableName: tableName,
		m:         &sync.Mutex{},
	}, nil
}

func (s *Service) Close() error {
	return s.db.Close()
}

func (s *Service) TableName() string {
	return s.tableName
}

func (s *Service) Insert(result GameResult) error {
	s.m.Lock()
	defer s.m.Unlock()
	_, err := s.db.Exec("INSERT INTO "+s.tableName+
		" (id, created_at, game, players, winner_seat, team1_score, team2_score, rounds) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		result.ID,
		result.CreatedAt,
		result.Game,
		result.Players,
		result.WinnerSeat,
		result.Team1Score,
		result.Team2Score,
		result.Rounds)
	return err
}

func (s *Service) GetAll() ([]GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query("SELECT * FROM " + s.tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var result GameResult
		if err := rows.Scan(
			&result.ID,
			&result.CreatedAt,
			&result.Game,
			&result.Players,
			&result.WinnerSeat,
			&result.Team1Score,
			&result.Team2Score,
			&result.Rounds); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *Service) GetByID(id string) (GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	var result GameResult
	err := s.db.QueryRow("SELECT * FROM "+s.tableName+" WHERE id = ?", id).Scan(
		&result.ID,
		&result.CreatedAt,
		&result.Game,
		&result.Players,
		&result.WinnerSeat,
		&result.Team1Score,
		&result.Team2Score,
		&result.Rounds)
	if err != nil {
		return GameResult{}, err
	}
	return result, nil
}

// GetByGame filters results down to one game kind.
func (s *Service) GetByGame(game string) ([]GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query("SELECT * FROM "+s.tableName+" WHERE game = ?", game)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var result GameResult
		if err := rows.Scan(
			&result.ID,
			&result.CreatedAt,
			&result.Game,
			&result.Players,
			&result.WinnerSeat,
			&result.Team1Score,
			&result.Team2Score,
			&result.Rounds); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, sql.ErrNoRows
	}

	return results, nil
}

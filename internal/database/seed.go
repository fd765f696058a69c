// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package database

import (
	"context"
	"fmt"
	"time"
)

// DevUserID is the id of the seeded development caller.
const DevUserID int64 = 1

// DevMonthlyCalls is the seeded caller's starting balance.
const DevMonthlyCalls = 1000

// SeedDevData loads a small fixture dataset and a tier-1 development
// caller whose token digest is devTokenHash. It is idempotent: rows that
// already exist are left alone.
func (db *DB) SeedDevData(ctx context.Context, devTokenHash string) (err error) {
	defer observe("seed_dev_data", time.Now(), &err)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	kickoff := time.Date(2025, time.September, 6, 19, 30, 0, 0, time.UTC)

	stmts := []struct {
		query string
		args  []interface{}
	}{
		{`INSERT INTO api_user (id, username, token_hash, patreon_tier, remaining_calls)
			VALUES ($1, 'dev', $2, 1, $3) ON CONFLICT DO NOTHING`,
			[]interface{}{DevUserID, devTokenHash, DevMonthlyCalls}},
		{`INSERT INTO team (id, school, mascot, abbreviation, conference, division) VALUES
			(52, 'Florida State', 'Seminoles', 'FSU', 'ACC', NULL),
			(61, 'Georgia', 'Bulldogs', 'UGA', 'SEC', NULL),
			(194, 'Ohio State', 'Buckeyes', 'OSU', 'Big Ten', NULL),
			(333, 'Alabama', 'Crimson Tide', 'ALA', 'SEC', NULL)
			ON CONFLICT DO NOTHING`, nil},
		{`INSERT INTO game (id, season, week, season_type, start_date, status, period, clock,
			home_team, home_conference, home_points, away_team, away_conference, away_points) VALUES
			(401628319, 2025, 2, 'regular', $1, 'final', NULL, NULL, 'Alabama', 'SEC', 31, 'Florida State', 'ACC', 17),
			(401628320, 2025, 2, 'regular', $2, 'in_progress', 3, '07:42', 'Ohio State', 'Big Ten', 21, 'Georgia', 'SEC', 24),
			(401628321, 2025, 3, 'regular', $3, 'scheduled', NULL, NULL, 'Georgia', 'SEC', NULL, 'Alabama', 'SEC', NULL)
			ON CONFLICT DO NOTHING`,
			[]interface{}{kickoff, kickoff.Add(4 * time.Hour), kickoff.Add(7 * 24 * time.Hour)}},
		{`INSERT INTO play (id, game_id, drive_number, play_number, offense, defense, period, clock,
			down, distance, yards_to_goal, yards_gained, play_type, play_text, ppa) VALUES
			(1, 401628319, 1, 1, 'Alabama', 'Florida State', 1, '15:00', 1, 10, 75, 8, 'Rush', 'Rush for 8 yards', 0.41),
			(2, 401628319, 1, 2, 'Alabama', 'Florida State', 1, '14:31', 2, 2, 67, 23, 'Pass Reception', 'Pass complete for 23 yards', 1.62),
			(3, 401628320, 1, 1, 'Georgia', 'Ohio State', 1, '15:00', 1, 10, 75, -2, 'Rush', 'Rush for a loss of 2', -0.55),
			(4, 401628320, 1, 2, 'Georgia', 'Ohio State', 1, '14:22', 2, 12, 77, 41, 'Pass Reception', 'Pass complete for 41 yards', 2.87)
			ON CONFLICT DO NOTHING`, nil},
		{`INSERT INTO player_season_stat (season, player_id, player, team, conference, category, stat_type, stat) VALUES
			(2025, 4870001, 'J. Milroe', 'Alabama', 'SEC', 'passing', 'YDS', 2834),
			(2025, 4870001, 'J. Milroe', 'Alabama', 'SEC', 'rushing', 'YDS', 726),
			(2025, 4870002, 'C. Beck', 'Georgia', 'SEC', 'passing', 'YDS', 3485),
			(2025, 4870003, 'T. Henderson', 'Ohio State', 'Big Ten', 'rushing', 'YDS', 1016)
			ON CONFLICT DO NOTHING`, nil},
		{`INSERT INTO sp_rating (year, team, conference, rating, ranking, offense, defense) VALUES
			(2025, 'Ohio State', 'Big Ten', 27.4, 1, 38.9, 11.2),
			(2025, 'Georgia', 'SEC', 24.1, 2, 35.0, 11.9),
			(2025, 'Alabama', 'SEC', 21.7, 3, 36.3, 14.8),
			(2025, 'Florida State', 'ACC', 2.3, 48, 22.4, 20.1)
			ON CONFLICT DO NOTHING`, nil},
		{`INSERT INTO recruit (id, year, name, school, committed_to, position, stars, rating, ranking, state_province) VALUES
			(90001, 2025, 'Bryce Underwood', 'Belleville', 'Michigan', 'QB', 5, 0.9997, 1, 'MI'),
			(90002, 2025, 'Jeremiah Smith', 'Chaminade-Madonna', 'Ohio State', 'WR', 5, 0.9995, 2, 'FL'),
			(90003, 2025, 'Ellis Robinson IV', 'IMG Academy', 'Georgia', 'CB', 5, 0.9981, 5, 'FL')
			ON CONFLICT DO NOTHING`, nil},
		{`INSERT INTO game_weather (game_id, game_indoors, temperature, humidity, wind_speed, precipitation, weather_condition) VALUES
			(401628319, FALSE, 84.2, 61, 6.9, 0, 'Clear'),
			(401628320, FALSE, 71.6, 48, 11.4, 0.02, 'Light Rain')
			ON CONFLICT DO NOTHING`, nil},
	}

	for _, s := range stmts {
		if _, err = tx.ExecContext(ctx, s.query, s.args...); err != nil {
			return fmt.Errorf("seed %.40q: %w", s.query, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

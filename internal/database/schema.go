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

// schemaStatements is portable between DuckDB and PostgreSQL.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS api_user (
		id BIGINT PRIMARY KEY,
		username VARCHAR NOT NULL,
		token_hash VARCHAR NOT NULL UNIQUE,
		patreon_tier INTEGER NOT NULL DEFAULT 0,
		remaining_calls INTEGER NOT NULL DEFAULT 0,
		blacklisted BOOLEAN NOT NULL DEFAULT FALSE,
		throttled BOOLEAN NOT NULL DEFAULT FALSE,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS team (
		id BIGINT PRIMARY KEY,
		school VARCHAR NOT NULL,
		mascot VARCHAR,
		abbreviation VARCHAR,
		conference VARCHAR,
		division VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS game (
		id BIGINT PRIMARY KEY,
		season INTEGER NOT NULL,
		week INTEGER NOT NULL,
		season_type VARCHAR NOT NULL DEFAULT 'regular',
		start_date TIMESTAMP NOT NULL,
		neutral_site BOOLEAN NOT NULL DEFAULT FALSE,
		status VARCHAR NOT NULL DEFAULT 'scheduled',
		period INTEGER,
		clock VARCHAR,
		home_team VARCHAR NOT NULL,
		home_conference VARCHAR,
		home_points INTEGER,
		away_team VARCHAR NOT NULL,
		away_conference VARCHAR,
		away_points INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS play (
		id BIGINT PRIMARY KEY,
		game_id BIGINT NOT NULL,
		drive_number INTEGER,
		play_number INTEGER,
		offense VARCHAR NOT NULL,
		defense VARCHAR NOT NULL,
		period INTEGER NOT NULL,
		clock VARCHAR NOT NULL,
		down INTEGER,
		distance INTEGER,
		yards_to_goal INTEGER,
		yards_gained INTEGER NOT NULL DEFAULT 0,
		play_type VARCHAR NOT NULL,
		play_text VARCHAR,
		ppa DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS player_season_stat (
		season INTEGER NOT NULL,
		player_id BIGINT NOT NULL,
		player VARCHAR NOT NULL,
		team VARCHAR NOT NULL,
		conference VARCHAR,
		category VARCHAR NOT NULL,
		stat_type VARCHAR NOT NULL,
		stat DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (season, player_id, category, stat_type)
	)`,
	`CREATE TABLE IF NOT EXISTS sp_rating (
		year INTEGER NOT NULL,
		team VARCHAR NOT NULL,
		conference VARCHAR,
		rating DOUBLE PRECISION NOT NULL,
		ranking INTEGER,
		offense DOUBLE PRECISION,
		defense DOUBLE PRECISION,
		PRIMARY KEY (year, team)
	)`,
	`CREATE TABLE IF NOT EXISTS recruit (
		id BIGINT PRIMARY KEY,
		year INTEGER NOT NULL,
		name VARCHAR NOT NULL,
		school VARCHAR,
		committed_to VARCHAR,
		position VARCHAR,
		stars INTEGER NOT NULL DEFAULT 0,
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		ranking INTEGER,
		state_province VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS game_weather (
		game_id BIGINT PRIMARY KEY,
		game_indoors BOOLEAN NOT NULL DEFAULT FALSE,
		temperature DOUBLE PRECISION,
		humidity DOUBLE PRECISION,
		wind_speed DOUBLE PRECISION,
		precipitation DOUBLE PRECISION,
		weather_condition VARCHAR
	)`,
	`CREATE INDEX IF NOT EXISTS idx_game_season_week ON game (season, week)`,
	`CREATE INDEX IF NOT EXISTS idx_game_status ON game (status)`,
	`CREATE INDEX IF NOT EXISTS idx_play_game ON play (game_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recruit_year ON recruit (year)`,
}

func (db *DB) createSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %.40q: %w", stmt, err)
		}
	}
	return nil
}

// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/gridiron/internal/models"
)

// GameFilter narrows game-shaped queries. Zero values mean "any".
type GameFilter struct {
	Year int
	Week int
	Team string
}

// StatFilter narrows season stat and rating queries.
type StatFilter struct {
	Year     int
	Team     string
	Category string
}

func (db *DB) ListTeams(ctx context.Context, conference string) (teams []models.Team, err error) {
	defer observe("list_teams", time.Now(), &err)

	var w where
	w.addIf(conference != "", "lower(conference) = lower(?)", conference)

	query := `SELECT id, school, mascot, abbreviation, conference, division FROM team` + w.String() + ` ORDER BY school`
	err = db.queryAndScan(ctx, query, w.args, func(rows *sql.Rows) error {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.School, &t.Mascot, &t.Abbreviation, &t.Conference, &t.Division); err != nil {
			return err
		}
		teams = append(teams, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (db *DB) ListGames(ctx context.Context, f GameFilter) (games []models.Game, err error) {
	defer observe("list_games", time.Now(), &err)

	var w where
	w.add("season = ?", f.Year)
	w.addIf(f.Week > 0, "week = ?", f.Week)
	w.addIf(f.Team != "", "(lower(home_team) = lower(?) OR lower(away_team) = lower(?))", f.Team)

	query := `SELECT id, season, week, season_type, start_date, neutral_site, status,
		home_team, home_conference, home_points, away_team, away_conference, away_points
		FROM game` + w.String() + ` ORDER BY start_date, id`
	err = db.queryAndScan(ctx, query, w.args, func(rows *sql.Rows) error {
		var g models.Game
		if err := rows.Scan(&g.ID, &g.Season, &g.Week, &g.SeasonType, &g.StartDate, &g.NeutralSite, &g.Status,
			&g.HomeTeam, &g.HomeConference, &g.HomePoints, &g.AwayTeam, &g.AwayConference, &g.AwayPoints); err != nil {
			return err
		}
		games = append(games, g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

const playColumns = `p.id, p.game_id, p.drive_number, p.play_number, p.offense, p.defense, p.period, p.clock,
	p.down, p.distance, p.yards_to_goal, p.yards_gained, p.play_type, p.play_text, p.ppa`

func scanPlay(rows *sql.Rows) (models.Play, error) {
	var p models.Play
	err := rows.Scan(&p.ID, &p.GameID, &p.DriveNumber, &p.PlayNumber, &p.Offense, &p.Defense, &p.Period, &p.Clock,
		&p.Down, &p.Distance, &p.YardsToGoal, &p.YardsGained, &p.PlayType, &p.PlayText, &p.PPA)
	return p, err
}

// ListPlays returns the plays of one week, optionally for one team on
// either side of the ball.
func (db *DB) ListPlays(ctx context.Context, f GameFilter) (plays []models.Play, err error) {
	defer observe("list_plays", time.Now(), &err)

	var w where
	w.add("g.season = ?", f.Year)
	w.add("g.week = ?", f.Week)
	w.addIf(f.Team != "", "(lower(p.offense) = lower(?) OR lower(p.defense) = lower(?))", f.Team)

	query := `SELECT ` + playColumns + ` FROM play p JOIN game g ON g.id = p.game_id` + w.String() +
		` ORDER BY p.game_id, p.id`
	err = db.queryAndScan(ctx, query, w.args, func(rows *sql.Rows) error {
		p, err := scanPlay(rows)
		if err != nil {
			return err
		}
		plays = append(plays, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list plays: %w", err)
	}
	return plays, nil
}

// ListLivePlays returns one game's plays, newest first.
func (db *DB) ListLivePlays(ctx context.Context, gameID int64) (plays []models.Play, err error) {
	defer observe("list_live_plays", time.Now(), &err)

	query := `SELECT ` + playColumns + ` FROM play p WHERE p.game_id = $1 ORDER BY p.id DESC`
	err = db.queryAndScan(ctx, query, []interface{}{gameID}, func(rows *sql.Rows) error {
		p, err := scanPlay(rows)
		if err != nil {
			return err
		}
		plays = append(plays, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list live plays: %w", err)
	}
	return plays, nil
}

func (db *DB) ListPlayerSeasonStats(ctx context.Context, f StatFilter) (stats []models.PlayerSeasonStat, err error) {
	defer observe("list_player_season_stats", time.Now(), &err)

	var w where
	w.add("season = ?", f.Year)
	w.addIf(f.Team != "", "lower(team) = lower(?)", f.Team)
	w.addIf(f.Category != "", "lower(category) = lower(?)", f.Category)

	query := `SELECT season, player_id, player, team, conference, category, stat_type, stat
		FROM player_season_stat` + w.String() + ` ORDER BY team, player, category, stat_type`
	err = db.queryAndScan(ctx, query, w.args, func(rows *sql.Rows) error {
		var s models.PlayerSeasonStat
		if err := rows.Scan(&s.Season, &s.PlayerID, &s.Player, &s.Team, &s.Conference, &s.Category, &s.StatType, &s.Stat); err != nil {
			return err
		}
		stats = append(stats, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list player season stats: %w", err)
	}
	return stats, nil
}

func (db *DB) ListSPRatings(ctx context.Context, f StatFilter) (ratings []models.SPRating, err error) {
	defer observe("list_sp_ratings", time.Now(), &err)

	var w where
	w.add("year = ?", f.Year)
	w.addIf(f.Team != "", "lower(team) = lower(?)", f.Team)

	query := `SELECT year, team, conference, rating, ranking, offense, defense FROM sp_rating` + w.String() +
		` ORDER BY rating DESC, team`
	err = db.queryAndScan(ctx, query, w.args, func(rows *sql.Rows) error {
		var r models.SPRating
		if err := rows.Scan(&r.Year, &r.Team, &r.Conference, &r.Rating, &r.Ranking, &r.Offense, &r.Defense); err != nil {
			return err
		}
		ratings = append(ratings, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sp ratings: %w", err)
	}
	return ratings, nil
}

// ListRecruits filters on the school a recruit committed to.
func (db *DB) ListRecruits(ctx context.Context, f StatFilter) (recruits []models.Recruit, err error) {
	defer observe("list_recruits", time.Now(), &err)

	var w where
	w.add("year = ?", f.Year)
	w.addIf(f.Team != "", "lower(committed_to) = lower(?)", f.Team)

	query := `SELECT id, year, name, school, committed_to, position, stars, rating, ranking, state_province
		FROM recruit` + w.String() + ` ORDER BY ranking NULLS LAST, id`
	err = db.queryAndScan(ctx, query, w.args, func(rows *sql.Rows) error {
		var r models.Recruit
		if err := rows.Scan(&r.ID, &r.Year, &r.Name, &r.School, &r.CommittedTo, &r.Position,
			&r.Stars, &r.Rating, &r.Ranking, &r.StateProvince); err != nil {
			return err
		}
		recruits = append(recruits, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list recruits: %w", err)
	}
	return recruits, nil
}

func (db *DB) ListGameWeather(ctx context.Context, f GameFilter) (weather []models.GameWeather, err error) {
	defer observe("list_game_weather", time.Now(), &err)

	var w where
	w.add("g.season = ?", f.Year)
	w.addIf(f.Week > 0, "g.week = ?", f.Week)
	w.addIf(f.Team != "", "(lower(g.home_team) = lower(?) OR lower(g.away_team) = lower(?))", f.Team)

	query := `SELECT g.id, g.season, g.week, g.home_team, g.away_team, gw.game_indoors,
		gw.temperature, gw.humidity, gw.wind_speed, gw.precipitation, gw.weather_condition
		FROM game_weather gw JOIN game g ON g.id = gw.game_id` + w.String() + ` ORDER BY g.start_date, g.id`
	err = db.queryAndScan(ctx, query, w.args, func(rows *sql.Rows) error {
		var gw models.GameWeather
		if err := rows.Scan(&gw.GameID, &gw.Season, &gw.Week, &gw.HomeTeam, &gw.AwayTeam, &gw.GameIndoors,
			&gw.Temperature, &gw.Humidity, &gw.WindSpeed, &gw.Precipitation, &gw.Condition); err != nil {
			return err
		}
		weather = append(weather, gw)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list game weather: %w", err)
	}
	return weather, nil
}

// Scoreboard lists games that are in progress or not yet started.
func (db *DB) Scoreboard(ctx context.Context, conference string) (games []models.ScoreboardGame, err error) {
	defer observe("scoreboard", time.Now(), &err)

	var w where
	w.add("status IN ('in_progress', ?)", "scheduled")
	w.addIf(conference != "", "(lower(home_conference) = lower(?) OR lower(away_conference) = lower(?))", conference)

	query := `SELECT id, start_date, status, period, clock, home_team, home_points, away_team, away_points, home_conference
		FROM game` + w.String() + ` ORDER BY start_date, id`
	err = db.queryAndScan(ctx, query, w.args, func(rows *sql.Rows) error {
		var g models.ScoreboardGame
		if err := rows.Scan(&g.ID, &g.StartDate, &g.Status, &g.Period, &g.Clock,
			&g.HomeTeam, &g.HomePoints, &g.AwayTeam, &g.AwayPoints, &g.Conference); err != nil {
			return err
		}
		games = append(games, g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scoreboard: %w", err)
	}
	return games, nil
}

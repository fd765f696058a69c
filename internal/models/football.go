// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package models

import "time"

type Team struct {
	ID           int64   `json:"id"`
	School       string  `json:"school"`
	Mascot       *string `json:"mascot"`
	Abbreviation *string `json:"abbreviation"`
	Conference   *string `json:"conference"`
	Division     *string `json:"division"`
}

type Game struct {
	ID             int64     `json:"id"`
	Season         int       `json:"season"`
	Week           int       `json:"week"`
	SeasonType     string    `json:"seasonType"`
	StartDate      time.Time `json:"startDate"`
	NeutralSite    bool      `json:"neutralSite"`
	Status         string    `json:"status"`
	HomeTeam       string    `json:"homeTeam"`
	HomeConference *string   `json:"homeConference"`
	HomePoints     *int      `json:"homePoints"`
	AwayTeam       string    `json:"awayTeam"`
	AwayConference *string   `json:"awayConference"`
	AwayPoints     *int      `json:"awayPoints"`
}

type Play struct {
	ID          int64    `json:"id"`
	GameID      int64    `json:"gameId"`
	DriveNumber *int     `json:"driveNumber"`
	PlayNumber  *int     `json:"playNumber"`
	Offense     string   `json:"offense"`
	Defense     string   `json:"defense"`
	Period      int      `json:"period"`
	Clock       string   `json:"clock"`
	Down        *int     `json:"down"`
	Distance    *int     `json:"distance"`
	YardsToGoal *int     `json:"yardsToGoal"`
	YardsGained int      `json:"yardsGained"`
	PlayType    string   `json:"playType"`
	PlayText    *string  `json:"playText"`
	PPA         *float64 `json:"ppa"`
}

type PlayerSeasonStat struct {
	Season     int     `json:"season"`
	PlayerID   int64   `json:"playerId"`
	Player     string  `json:"player"`
	Team       string  `json:"team"`
	Conference *string `json:"conference"`
	Category   string  `json:"category"`
	StatType   string  `json:"statType"`
	Stat       float64 `json:"stat"`
}

type SPRating struct {
	Year       int      `json:"year"`
	Team       string   `json:"team"`
	Conference *string  `json:"conference"`
	Rating     float64  `json:"rating"`
	Ranking    *int     `json:"ranking"`
	Offense    *float64 `json:"offense"`
	Defense    *float64 `json:"defense"`
}

type Recruit struct {
	ID            int64   `json:"id"`
	Year          int     `json:"year"`
	Name          string  `json:"name"`
	School        *string `json:"school"`
	CommittedTo   *string `json:"committedTo"`
	Position      *string `json:"position"`
	Stars         int     `json:"stars"`
	Rating        float64 `json:"rating"`
	Ranking       *int    `json:"ranking"`
	StateProvince *string `json:"stateProvince"`
}

type GameWeather struct {
	GameID        int64    `json:"id"`
	Season        int      `json:"season"`
	Week          int      `json:"week"`
	HomeTeam      string   `json:"homeTeam"`
	AwayTeam      string   `json:"awayTeam"`
	GameIndoors   bool     `json:"gameIndoors"`
	Temperature   *float64 `json:"temperature"`
	Humidity      *float64 `json:"humidity"`
	WindSpeed     *float64 `json:"windSpeed"`
	Precipitation *float64 `json:"precipitation"`
	Condition     *string  `json:"weatherCondition"`
}

// ScoreboardGame is a live or upcoming game as shown on the scoreboard.
type ScoreboardGame struct {
	ID         int64     `json:"id"`
	StartDate  time.Time `json:"startDate"`
	Status     string    `json:"status"`
	Period     *int      `json:"period"`
	Clock      *string   `json:"clock"`
	HomeTeam   string    `json:"homeTeam"`
	HomePoints *int      `json:"homePoints"`
	AwayTeam   string    `json:"awayTeam"`
	AwayPoints *int      `json:"awayPoints"`
	Conference *string   `json:"conference"`
}

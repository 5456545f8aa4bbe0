package models

import "time"

// Position is a contested office on the ballot.
type Position string

// Closed set of positions
const (
	PositionPresident     Position = "President"
	PositionVicePresident Position = "Vice President"
	PositionSecretary     Position = "Secretary"
	PositionTreasurer     Position = "Treasurer"
)

// Positions lists every contested office in ballot order.
var Positions = []Position{
	PositionPresident,
	PositionVicePresident,
	PositionSecretary,
	PositionTreasurer,
}

// Valid reports whether p is one of the contested offices.
func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// Turnout grouping attributes
type GroupBy string

const (
	GroupByDepartment GroupBy = "department"
	GroupByYear       GroupBy = "year"
)

// Request types

type RegisterRequest struct {
	StudentID  string `json:"studentId" validate:"required,studentid"`
	Name       string `json:"name" validate:"required,min=2,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	Department string `json:"department" validate:"required"`
	Year       int    `json:"year" validate:"required,min=1,max=4"`
}

type LoginRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type CastVoteRequest struct {
	Votes []Selection `json:"votes" validate:"required,min=1,dive"`
}

type CandidateRequest struct {
	Name       string   `json:"name" validate:"required,min=2,max=50"`
	Position   Position `json:"position" validate:"required,position"`
	Department string   `json:"department" validate:"required"`
	Year       int      `json:"year" validate:"required,min=1,max=4"`
	Manifesto  string   `json:"manifesto" validate:"required,max=500"`
	PhotoURL   string   `json:"photoUrl" validate:"omitempty,url"`
}

// Fields left nil are not changed. There is deliberately no vote count field.
type UpdateCandidateRequest struct {
	Name       *string   `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Position   *Position `json:"position,omitempty" validate:"omitempty,position"`
	Department *string   `json:"department,omitempty" validate:"omitempty,min=1"`
	Year       *int      `json:"year,omitempty" validate:"omitempty,min=1,max=4"`
	Manifesto  *string   `json:"manifesto,omitempty" validate:"omitempty,max=500"`
	PhotoURL   *string   `json:"photoUrl,omitempty" validate:"omitempty,url"`
	IsActive   *bool     `json:"isActive,omitempty"`
}

// Response types

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type CastVoteResponse struct {
	BallotID  string    `json:"ballotId"`
	Timestamp time.Time `json:"timestamp"`
}

type VoteStatusResponse struct {
	HasVoted bool       `json:"hasVoted"`
	VotedAt  *time.Time `json:"votedAt"`
	VotedAgo string     `json:"votedAgo,omitempty"`
}

type CandidatesResponse struct {
	Count      int                      `json:"count"`
	ByPosition map[Position][]Candidate `json:"candidates"`
	All        []Candidate              `json:"allCandidates"`
}

type ResetResponse struct {
	Message string      `json:"message"`
	Reset   ResetRecord `json:"reset"`
}

// Domain types

type User struct {
	ID         string     `json:"id"`
	StudentID  string     `json:"studentId"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Department string     `json:"department"`
	Year       int        `json:"year"`
	IsAdmin    bool       `json:"isAdmin"`
	HasVoted   bool       `json:"hasVoted"`
	VotedAt    *time.Time `json:"votedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type Candidate struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Position   Position  `json:"position"`
	Department string    `json:"department"`
	Year       int       `json:"year"`
	Manifesto  string    `json:"manifesto"`
	PhotoURL   string    `json:"photoUrl"`
	IsActive   bool      `json:"isActive"`
	VoteCount  int       `json:"voteCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Selection is one (position, candidate) pair on a ballot.
type Selection struct {
	Position    Position `json:"position" validate:"required,position"`
	CandidateID string   `json:"candidateId" validate:"required"`
}

type Ballot struct {
	ID         string      `json:"id"`
	UserID     string      `json:"-"`
	Selections []Selection `json:"selections"`
	IPHash     string      `json:"-"` // Never expose in JSON
	UserAgent  string      `json:"-"` // Never expose in JSON
	CreatedAt  time.Time   `json:"timestamp"`
}

// Results types

// CandidateResult is the public projection of a candidate on the results screen.
type CandidateResult struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Year       int    `json:"year"`
	VoteCount  int    `json:"voteCount"`
	Manifesto  string `json:"manifesto"`
	PhotoURL   string `json:"photoUrl"`
}

type ResultTotals struct {
	TotalVotes     int     `json:"totalVotes"`
	TotalUsers     int     `json:"totalUsers"`
	TurnoutPercent float64 `json:"turnoutPercent"`
}

type Results struct {
	ResultsByPosition map[Position][]CandidateResult `json:"resultsByPosition"`
	Totals            ResultTotals                   `json:"totals"`
}

type HourlyCount struct {
	Hour  time.Time `json:"hour"`
	Count int       `json:"count"`
}

// GroupCount is the raw material for one turnout row.
type GroupCount struct {
	Key   string
	Total int
	Voted int
}

type Turnout struct {
	Key           string  `json:"key"`
	TotalStudents int     `json:"totalStudents"`
	VotedStudents int     `json:"votedStudents"`
	VotingPercent float64 `json:"votingPercentage"`
}

type PositionTally struct {
	Position   Position       `json:"position"`
	Candidates []NameAndVotes `json:"candidates"`
	TotalVotes int            `json:"totalVotes"`
}

type NameAndVotes struct {
	Name      string `json:"name"`
	VoteCount int    `json:"voteCount"`
}

type Overview struct {
	TotalUsers      int     `json:"totalUsers"`
	TotalVotes      int     `json:"totalVotes"`
	TotalCandidates int     `json:"totalCandidates"`
	UsersVoted      int     `json:"usersVoted"`
	TurnoutPercent  float64 `json:"votingPercentage"`
}

type Statistics struct {
	Overview             Overview        `json:"overview"`
	VotesPerHour         []HourlyCount   `json:"votesPerHour"`
	CandidatesByPosition []PositionTally `json:"candidatesByPosition"`
	DepartmentStats      []Turnout       `json:"departmentStats"`
	YearStats            []Turnout       `json:"yearStats"`
}

// Admin types

type ResetRecord struct {
	ID             string    `json:"id"`
	ActorID        string    `json:"actorId"`
	BallotsCleared int       `json:"ballotsCleared"`
	ResetAt        time.Time `json:"resetAt"`
}

type ReconcileReport struct {
	CandidatesRepaired int `json:"candidatesRepaired"`
	UsersRepaired      int `json:"usersRepaired"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

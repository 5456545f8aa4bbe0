// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON. Validation rules live in `validate` tags:

  - RegisterRequest: studentId, name, email, password, department, year
  - LoginRequest: studentId, password
  - CastVoteRequest: votes ([]Selection)
  - CandidateRequest: name, position, department, year, manifesto, photoUrl
  - UpdateCandidateRequest: optional fields, no vote count

# Response Types

  - AuthResponse: user, token
  - CastVoteResponse: ballotId, timestamp
  - VoteStatusResponse: hasVoted, votedAt, votedAgo
  - CandidatesResponse: count, candidates (by position), allCandidates
  - Results, Statistics: tallies, turnout and vote-rate data
  - ResetResponse, ReconcileReport: admin operation outcomes
  - ErrorResponse: error, message

# Domain Types

  - User: account and voting state
  - Candidate: candidate record and tally
  - Selection: one (position, candidateId) pair
  - Ballot: immutable submission

# Positions

	PositionPresident     = "President"
	PositionVicePresident = "Vice President"
	PositionSecretary     = "Secretary"
	PositionTreasurer     = "Treasurer"

Positions lists them in ballot order.
*/
package models

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitApplicationRequest: description, amount, country, contact, agreed_to_rules
  - CastVoteRequest: visitor_token, application_id
  - SelectRequest: count
  - NewPeriodRequest: duration_days

# Response Types

Types for JSON responses:

  - SubmitApplicationResponse: success, application, errors
  - CastVoteResponse: success, message, next_vote_time
  - VotingStatusResponse: can_vote, voted_today, today_votes, next_vote_time
  - SelectResponse: success, selected, message, period_id
  - EndPeriodResponse: success, period, winner, message
  - BallotResponse: applications, total_submitted, period_end
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Application: a donation request and its moderation state
  - VotingPeriod: one round of the campaign lifecycle
  - Vote: a single daily vote by an anonymous visitor
  - PeriodSnapshot: admin view of the active period

Contact details and visitor hashes never serialize to JSON.

# Constants

Application status values:

	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusSelected = "SELECTED"
	StatusRejected = "REJECTED"
	StatusWinner   = "WINNER"

Period status values:

	PeriodCollecting = "COLLECTING"
	PeriodVoting     = "VOTING"
	PeriodCompleted  = "COMPLETED"
*/
package models

package main

import "time"

const (
	appName = "finpal"

	standardMargin = 2
	takenHeight    = 6

	notificationLifetime = 3 * time.Second
	aiResponseTimeout    = 30 * time.Second
	captureTimeout       = 15 * time.Second
	saveTimeout          = 5 * time.Second

	anthropicModel     = "claude-3-haiku-20240307"
	anthropicMaxTokens = 512
)

// Loading keys
const (
	ledgerLoadingKey  = "ledger"
	devicesLoadingKey = "devices"
)

// Session states
type sessionState int

const (
	overviewState sessionState = iota
	transactions
	insertTransaction
	voiceEntry
	cameraEntry
	goals
	newGoal
	contributeGoal
	budgets
	editBudget
	statisticsView
	profile
	assistantChat
	loading
	errorState
)

func (ss sessionState) String() string {
	switch ss {
	case overviewState:
		return "overview"
	case transactions:
		return "transactions"
	case insertTransaction:
		return "add transaction"
	case voiceEntry:
		return "voice entry"
	case cameraEntry:
		return "scan receipt"
	case goals:
		return "goals"
	case newGoal:
		return "new goal"
	case contributeGoal:
		return "add to goal"
	case budgets:
		return "budgets"
	case editBudget:
		return "edit budget"
	case statisticsView:
		return "statistics"
	case profile:
		return "profile"
	case assistantChat:
		return "assistant"
	case loading:
		return "loading"
	case errorState:
		return "error"
	}

	return "unknown"
}

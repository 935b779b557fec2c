// Package domain holds the model types and interfaces shared across the bot.
// It depends on nothing internal so every component can consume it without
// import cycles.
package domain

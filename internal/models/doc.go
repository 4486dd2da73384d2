// Package models defines the core domain models for a poker night.
//
// # Models
//
//   - Game: one poker night, Open while players buy in and cash out, Closed once settled
//   - Participant: a player seated in one game, with the money movements recorded for them
//   - MoneyMovement: one cash or debt movement between a participant and the pot
//   - Transfer: one payment instruction of the final settlement
//
// # Design Principles
//
// 1. **Snapshots, not mutation**: recording a movement builds a new Participant value
// 2. **One-way state**: a Closed game never reopens and its transfers are never edited
// 3. **Avoid circular references**: use ID strings instead of pointers for relationships
//
// The pot is not a participant row. Settlement treats it as a synthetic entry whose
// identifier is calculator.PotID, so transfers may name it as giver or receiver.
package models

// Package kernel provides the value objects shared by every aggregate of the
// pressing domain:
//   - ID: positive numeric identifier, generated with snowflake for new aggregates
//   - Money: non-negative decimal amount
package kernel

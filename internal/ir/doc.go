// Package ir holds the constrained value model that sample results are
// projected into before they leave the process as JSON or are digested.
//
// Values are strings, int64s, bools, arrays and objects. There is no float
// and no null: decimals travel as their exact string rendering and absent
// data is an empty array. ir imports nothing internal.
package ir

// Package identity models the staff member acting on an order: their role and
// the pressing or plant they are attached to.
package identity

// Package services holds the domain services of the pressing workflow:
//   - AccessPolicy: role and pressing/plant scoping of every operation
//   - OrderPricer: order totals and the minimum order amount
//   - BatchPlanner: all-or-nothing validation of batch transitions
package services

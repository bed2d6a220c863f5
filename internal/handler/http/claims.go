package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/peopleops/hrms-backend-go/internal/domain/user"
)

// currentUserID pulls the authenticated user ID out of the verified
// access token. Routes behind AuthRequired always have one.
func currentUserID(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	userID, ok := claims["user_id"].(string)
	return userID, ok && userID != ""
}

func currentRole(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return user.Role(roleStr), true
}

// currentEmployeeID returns the employee row linked to the caller, or
// false for accounts with no employee record.
func currentEmployeeID(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	employeeID, ok := claims["employee_id"].(string)
	return employeeID, ok && employeeID != ""
}

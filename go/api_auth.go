package logisticsserver

import (
	"github.com/gin-gonic/gin"

	usermapper "github.com/Apurer/pan-logistics-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/pan-logistics-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/pan-logistics-api/internal/shared/errors"
)

// AuthAPI serves login and back-office account management.
type AuthAPI struct {
	service   userports.Service
	responder *apierrors.ChainedResponder
}

// NewAuthAPI creates an AuthAPI backed by the provided service.
func NewAuthAPI(service userports.Service) AuthAPI {
	return AuthAPI{service: service, responder: newResponder(nil)}
}

// Post /api/auth/login
// Exchange credentials for a bearer token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload usermapper.Login
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	session, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		api.responder.RespondError(c, err, "Error logging in")
		return
	}
	respondOK(c, Envelope{Message: "Login successful", Data: usermapper.FromSession(session)})
}

// Post /api/auth/register
// Create a staff or admin account
func (api *AuthAPI) Register(c *gin.Context) {
	var payload usermapper.Register
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	user, err := api.service.Register(c.Request.Context(), usermapper.ToRegisterInput(payload))
	if err != nil {
		api.responder.RespondError(c, err, "Error registering user")
		return
	}
	respondCreated(c, Envelope{
		Message: "User registered successfully",
		Data:    gin.H{"user": usermapper.FromDomainUser(user)},
	})
}

// Get /api/auth/me
// Return the caller's account
func (api *AuthAPI) Me(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		api.responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("Access denied. No token provided."))
		return
	}
	user, err := api.service.Me(c.Request.Context(), caller.ID)
	if err != nil {
		api.responder.RespondError(c, err, "Error retrieving user")
		return
	}
	respondOK(c, Envelope{Data: gin.H{"user": usermapper.FromDomainUser(user)}})
}

// Put /api/auth/password
// Change the caller's password
func (api *AuthAPI) ChangePassword(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		api.responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("Access denied. No token provided."))
		return
	}
	var payload usermapper.ChangePassword
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	if err := api.service.ChangePassword(c.Request.Context(), caller.ID, payload.CurrentPassword, payload.NewPassword); err != nil {
		api.responder.RespondError(c, err, "Error changing password")
		return
	}
	respondOK(c, Envelope{Message: "Password changed successfully"})
}

// Get /api/auth/users
// List back-office accounts
func (api *AuthAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err, "Error retrieving users")
		return
	}
	respondOK(c, Envelope{Data: gin.H{"users": usermapper.FromDomainUsers(users)}})
}

// Put /api/auth/users/:id/role
// Change an account's role
func (api *AuthAPI) UpdateUserRole(c *gin.Context) {
	var payload usermapper.UpdateRole
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	user, err := api.service.UpdateRole(c.Request.Context(), c.Param("id"), payload.Role)
	if err != nil {
		api.responder.RespondError(c, err, "Error updating role")
		return
	}
	respondOK(c, Envelope{Message: "Role updated successfully", Data: gin.H{"user": usermapper.FromDomainUser(user)}})
}

// Delete /api/auth/users/:id
// Remove an account
func (api *AuthAPI) DeleteUser(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		api.responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("Access denied. No token provided."))
		return
	}
	if err := api.service.Delete(c.Request.Context(), caller.ID, c.Param("id")); err != nil {
		api.responder.RespondError(c, err, "Error deleting user")
		return
	}
	respondOK(c, Envelope{Message: "User deleted successfully"})
}

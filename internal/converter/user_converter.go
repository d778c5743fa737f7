package converter

import (
	"uiu-clinic-api/internal/delivery/dto"
	"uiu-clinic-api/internal/domain/entity"
	"uiu-clinic-api/pkg/jwt"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:               user.ID,
		UIUID:            user.UIUID,
		Name:             user.DisplayName(),
		Email:            user.Email,
		Role:             user.Role.Display(),
		Phone:            user.Phone,
		Department:       user.Department,
		BloodGroup:       user.BloodGroup,
		Address:          user.Address,
		EmergencyContact: user.EmergencyContact,
		IsActive:         user.IsActive,
		CreatedAt:        user.CreatedAt,
	}

	if user.DateOfBirth != nil {
		response.DateOfBirth = user.DateOfBirth.Format(entity.DateLayout)
	}

	return response
}

// UsersToResponses converts a slice of User entities to UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}

// DoctorToResponse converts a staff User to its directory entry
func DoctorToResponse(user *entity.User) dto.DoctorResponse {
	return dto.DoctorResponse{
		UIUID:      user.UIUID,
		Name:       user.DisplayName(),
		Email:      user.Email,
		Phone:      user.Phone,
		Department: user.Department,
	}
}

func DoctorsToResponses(users []entity.User) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(users))
	for i := range users {
		responses[i] = DoctorToResponse(&users[i])
	}
	return responses
}

// TokenPairToResponse converts an issued token pair to TokenResponse DTO
func TokenPairToResponse(pair *jwt.TokenPair) *dto.TokenResponse {
	if pair == nil {
		return nil
	}
	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int64(pair.ExpiresIn.Seconds()),
	}
}

package dto

import (
	"github.com/wictors/BackendAssignment-Fitness/internal/entity"
)

// UserResponse never carries the password hash or the soft-delete
// bookkeeping columns.
type UserResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Surname   string             `json:"surname"`
	NickName  string             `json:"nickName"`
	Email     string             `json:"email"`
	Age       int                `json:"age"`
	Role      string             `json:"role"`
	Exercises []ExerciseResponse `json:"exercises,omitempty"`
}

// PublicUserResponse is the reduced shape other users are allowed to see.
type PublicUserResponse struct {
	ID       string `json:"id"`
	NickName string `json:"nickName"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty"`
	Surname  *string `json:"surname" validate:"omitempty"`
	NickName *string `json:"nickName" validate:"omitempty"`
	Age      *int    `json:"age" validate:"omitempty,gt=0"`
	Role     *string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

type ProfileResponse struct {
	UserResponse
	CompletedExercises []UserExerciseResponse `json:"completedExercises"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	response := UserResponse{
		ID:       user.ID.String(),
		Name:     user.Name,
		Surname:  user.Surname,
		NickName: user.NickName,
		Email:    user.Email,
		Age:      user.Age,
		Role:     string(user.Role),
	}
	if user.Exercises != nil {
		response.Exercises = ExerciseResponsesFromEntities(user.Exercises)
	}
	return response
}

func UserResponsesFromEntities(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserResponseFromEntity(&users[i]))
	}
	return responses
}

func PublicUserResponsesFromEntities(users []entity.User) []PublicUserResponse {
	responses := make([]PublicUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, PublicUserResponse{
			ID:       user.ID.String(),
			NickName: user.NickName,
		})
	}
	return responses
}

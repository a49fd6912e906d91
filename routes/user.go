package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"rent4u-server/models"
	"rent4u-server/storage"
	"rent4u-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Overridable in tests.
var googleUserInfoEndpoint = "https://www.googleapis.com/userinfo/v2/me"

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if userInput.Phone != "" && !utils.ValidatePhoneNumber(userInput.Phone) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid phone number", ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	userType := userInput.UserType
	if userType != "owner" {
		userType = "renter"
	}

	newUser = models.User{
		FirstName:          userInput.FirstName,
		LastName:           userInput.LastName,
		Email:              strings.ToLower(userInput.Email),
		Password:           hashedPassword,
		Phone:              utils.FormatPhoneNumber(userInput.Phone),
		Location:           userInput.Location,
		Occupation:         userInput.Occupation,
		UserType:           userType,
		VerificationStatus: "pending",
		SocialLogin:        false,
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid email or password."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if existingUser.SocialLogin {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Social Login Account", ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

// GoogleLoginOrSignUp exchanges a Google access token for a session. New
// identities get a profile with the provider name split at the first
// whitespace boundary, renter type and pending verification.
func GoogleLoginOrSignUp(ctx iris.Context) {
	var userInput GoogleUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	client := &http.Client{}
	req, _ := http.NewRequest("GET", googleUserInfoEndpoint, nil)
	req.Header.Set("Authorization", "Bearer "+userInput.AccessToken)
	res, googleErr := client.Do(req)
	if googleErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	defer res.Body.Close()
	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var googleBody GoogleUserRes
	json.Unmarshal(body, &googleBody)

	if googleBody.Email == "" {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Could not verify Google account", ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, googleBody.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		firstName, lastName := splitFullName(googleBody.Name)
		if firstName == "" {
			firstName = googleBody.GivenName
			lastName = googleBody.FamilyName
		}
		user = models.User{
			FirstName:          firstName,
			LastName:           lastName,
			Email:              strings.ToLower(googleBody.Email),
			SocialLogin:        true,
			SocialProvider:     "Google",
			UserType:           "renter",
			VerificationStatus: "pending",
		}
		if err := storage.DB.Create(&user).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}

		returnUser(user, ctx)
		return
	}

	if user.SocialLogin && user.SocialProvider == "Google" {
		returnUser(user, ctx)
		return
	}

	utils.CreateEmailAlreadyRegistered(ctx)
}

// Logout revokes the refresh token; the access token simply expires.
func Logout(ctx iris.Context) {
	var input utils.RefreshTokenInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	utils.RevokeRefreshToken(input.RefreshToken)
	ctx.JSON(iris.Map{"ok": true})
}

// GetCurrentUser restores the session for the token bearer.
func GetCurrentUser(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(user)
}

func UpdateUserProfile(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var input UpdateProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if input.Phone != "" && !utils.ValidatePhoneNumber(input.Phone) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid phone number", ctx)
		return
	}

	updates := map[string]interface{}{}
	if input.FirstName != "" {
		updates["first_name"] = input.FirstName
	}
	if input.LastName != "" {
		updates["last_name"] = input.LastName
	}
	if input.Phone != "" {
		updates["phone"] = utils.FormatPhoneNumber(input.Phone)
	}
	if input.Location != "" {
		updates["location"] = input.Location
	}
	if input.Occupation != "" {
		updates["occupation"] = input.Occupation
	}

	if len(updates) > 0 {
		if err := storage.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.JSON(user)
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// splitFullName breaks a provider-supplied display name at the first
// whitespace boundary; everything after it becomes the last name.
func splitFullName(fullName string) (firstName string, lastName string) {
	trimmed := strings.TrimSpace(fullName)
	if trimmed == "" {
		return "", ""
	}
	nameArr := strings.SplitN(trimmed, " ", 2)
	firstName = nameArr[0]
	if len(nameArr) > 1 {
		lastName = strings.TrimSpace(nameArr[1])
	}
	return firstName, lastName
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":                 user.ID,
		"firstName":          user.FirstName,
		"lastName":           user.LastName,
		"email":              user.Email,
		"phone":              user.Phone,
		"userType":           user.UserType,
		"verificationStatus": user.VerificationStatus,
		"accessToken":        string(tokenPair.AccessToken),
		"refreshToken":       string(tokenPair.RefreshToken),
	})
}

type RegisterUserInput struct {
	FirstName  string `json:"firstName" validate:"required,max=256"`
	LastName   string `json:"lastName" validate:"required,max=256"`
	Email      string `json:"email" validate:"required,max=256,email"`
	Password   string `json:"password" validate:"required,min=8,max=256"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	Occupation string `json:"occupation"`
	UserType   string `json:"userType" validate:"omitempty,oneof=renter owner"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	Occupation string `json:"occupation"`
}

type GoogleUserInput struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

type GoogleUserRes struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

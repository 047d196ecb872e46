package http

// SyncUser godoc
// @Summary Sync the authenticated identity
// @Description Create the local user record on first contact; later calls return the existing record
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,photo_url=string} false "Profile extras"
// @Success 200 {object} object{success=bool,message=string,data=object{user=object,created=bool}}
// @Success 201 {object} object{success=bool,message=string,data=object{user=object,created=bool}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /users/sync [post]
func (h *UserHandler) SyncUserDoc() {}

// GetMe godoc
// @Summary Get my profile
// @Description Get the authenticated user's profile including premium status
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/users/me [get]
func (h *UserHandler) GetMeDoc() {}

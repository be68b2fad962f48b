package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fadistore/storefront/internal/dto"
	mw "github.com/fadistore/storefront/internal/middleware"
	"github.com/fadistore/storefront/internal/service"
	"github.com/fadistore/storefront/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	adminService   service.AdminService
	productService service.ProductService
}

func CreateAdminController(e *echo.Echo, adminService service.AdminService, productService service.ProductService) {
	ac := AdminController{
		adminService:   adminService,
		productService: productService,
	}

	e.GET("/admin", ac.ShowLogin)
	e.POST("/admin", ac.Login)
	e.GET("/admin/dashboard", ac.Dashboard, mw.RequireAdmin)
	e.GET("/admin/add", ac.ShowAddProduct, mw.RequireAdmin)
	e.POST("/admin/add", ac.AddProduct, mw.RequireAdmin)
	e.GET("/admin/edit/:id", ac.ShowEditProduct, mw.RequireAdmin)
	e.POST("/admin/edit/:id", ac.EditProduct, mw.RequireAdmin)
	e.GET("/admin/change_password", ac.ShowChangePassword, mw.RequireAdmin)
	e.POST("/admin/change_password", ac.ChangePassword, mw.RequireAdmin)
	e.GET("/logout", ac.Logout, mw.RequireAdmin)
}

func (ac *AdminController) ShowLogin(c echo.Context) error {
	if mw.IsAuthenticated(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}

	return c.Render(http.StatusOK, "admin_login.html", echo.Map{
		"Errors": mw.TakeFlashes(c, "danger"),
	})
}

func (ac *AdminController) Login(c echo.Context) error {
	payload := dto.LoginRequest{}
	if err := c.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
	}

	admin, err := ac.adminService.Login(c.Request().Context(), payload)
	if err != nil {
		mw.AddFlash(c, "danger", "Invalid username or password")
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	if err := mw.SetAdminSession(c, admin.ID); err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (ac *AdminController) Dashboard(c echo.Context) error {
	products, err := ac.productService.GetProducts(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Str("component", "Dashboard").Msg("")
		return echo.NewHTTPError(errs.GetErrorStatusCode(err))
	}

	username := ""
	if admin, err := ac.adminService.GetAdminByID(c.Request().Context(), mw.AdminIDFromContext(c)); err == nil {
		username = admin.Username
	}

	return c.Render(http.StatusOK, "admin_dashboard.html", echo.Map{
		"Products": products,
		"Username": username,
		"Messages": mw.TakeFlashes(c, "success"),
		"Errors":   mw.TakeFlashes(c, "danger"),
	})
}

func (ac *AdminController) ShowAddProduct(c echo.Context) error {
	return c.Render(http.StatusOK, "add_product.html", echo.Map{
		"Errors": mw.TakeFlashes(c, "danger"),
	})
}

func (ac *AdminController) AddProduct(c echo.Context) error {
	payload := dto.ProductRequest{}
	if err := c.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "AddProduct").Msg("")
	}

	filename, err := ac.storeUploadedImage(c)
	if err != nil {
		mw.AddFlash(c, "danger", err.Error())
		return c.Redirect(http.StatusSeeOther, "/admin/add")
	}
	payload.ImageFilename = filename

	if _, err := ac.productService.AddProduct(c.Request().Context(), payload); err != nil {
		if errors.Is(err, errs.ErrClient) {
			mw.AddFlash(c, "danger", "Name and description are required")
		} else {
			mw.AddFlash(c, "danger", "Failed to add product")
		}
		return c.Redirect(http.StatusSeeOther, "/admin/add")
	}

	mw.AddFlash(c, "success", "Product added successfully")
	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (ac *AdminController) ShowEditProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	product, err := ac.productService.GetProductByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(errs.GetErrorStatusCode(err))
	}

	return c.Render(http.StatusOK, "edit_product.html", echo.Map{
		"Product": product,
		"Errors":  mw.TakeFlashes(c, "danger"),
	})
}

func (ac *AdminController) EditProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	payload := dto.ProductRequest{}
	if err := c.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "EditProduct").Msg("")
	}
	payload.ID = id

	filename, err := ac.storeUploadedImage(c)
	if err != nil {
		mw.AddFlash(c, "danger", err.Error())
		return c.Redirect(http.StatusSeeOther, "/admin/edit/"+c.Param("id"))
	}
	payload.ImageFilename = filename

	if err := ac.productService.UpdateProduct(c.Request().Context(), payload); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		if errors.Is(err, errs.ErrClient) {
			mw.AddFlash(c, "danger", "Name and description are required")
		} else {
			mw.AddFlash(c, "danger", "Failed to update product")
		}
		return c.Redirect(http.StatusSeeOther, "/admin/edit/"+c.Param("id"))
	}

	mw.AddFlash(c, "success", "Product updated successfully")
	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (ac *AdminController) ShowChangePassword(c echo.Context) error {
	return c.Render(http.StatusOK, "change_password.html", echo.Map{
		"Errors": mw.TakeFlashes(c, "danger"),
	})
}

func (ac *AdminController) ChangePassword(c echo.Context) error {
	payload := dto.ChangePasswordRequest{}
	if err := c.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "ChangePassword").Msg("")
	}

	err := ac.adminService.ChangePassword(c.Request().Context(), mw.AdminIDFromContext(c), payload)
	if err != nil {
		if errors.Is(err, errs.ErrWrongPassword) {
			mw.AddFlash(c, "danger", "Current password is incorrect")
		} else {
			mw.AddFlash(c, "danger", "Failed to change password")
		}
		return c.Redirect(http.StatusSeeOther, "/admin/change_password")
	}

	mw.AddFlash(c, "success", "Password changed successfully")
	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (ac *AdminController) Logout(c echo.Context) error {
	if err := mw.ClearAdminSession(c); err != nil {
		log.Error().Err(err).Str("component", "Logout").Msg("")
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

// storeUploadedImage persists the optional "image" form file and returns its
// stored name, or nil when the field is absent.
func (ac *AdminController) storeUploadedImage(c echo.Context) (*string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// Absent file field means "no image" / "keep existing image".
		return nil, nil
	}
	if fileHeader.Filename == "" || fileHeader.Size == 0 {
		// Browsers submit an empty part when no file was chosen.
		return nil, nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Str("component", "storeUploadedImage").Msg("")
		return nil, errs.ErrInternalServer
	}
	defer src.Close()

	filename, err := ac.productService.StoreImage(src, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		return nil, err
	}

	return &filename, nil
}

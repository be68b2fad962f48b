package controller

import (
	"net/http"

	"github.com/fadistore/storefront/internal/service"
	"github.com/fadistore/storefront/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// whatsappNumber is the storefront contact shown on the public listing.
const whatsappNumber = "+96103177862"

type PublicController struct {
	productService service.ProductService
}

func CreatePublicController(e *echo.Echo, productService service.ProductService) {
	pc := PublicController{
		productService: productService,
	}
	e.GET("/", pc.Index)
}

func (pc *PublicController) Index(c echo.Context) error {
	products, err := pc.productService.GetProducts(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Str("component", "Index").Msg("")
		return echo.NewHTTPError(errs.GetErrorStatusCode(err))
	}

	return c.Render(http.StatusOK, "index.html", echo.Map{
		"Products": products,
		"WhatsApp": whatsappNumber,
	})
}

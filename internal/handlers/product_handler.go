package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"orderdesk/internal/middleware"
	"orderdesk/internal/models"
	"orderdesk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProductHandler handles HTTP requests for products and product images.
type ProductHandler struct {
	service   *services.ProductService
	validate  *validator.Validate
	baseURL   string
	uploadDir string
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, baseURL, uploadDir string) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validate:  validator.New(),
		baseURL:   baseURL,
		uploadDir: uploadDir,
	}
}

// RegisterRoutes registers the product routes with the Fiber app. Listing
// and detail are public; every mutation is admin only.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:productId", h.HandleGetProductByID)

	auth := middleware.AuthRequired(authService)
	admin := middleware.RequireRole(models.RoleAdmin)
	productRoutes.Post("/", auth, admin, h.HandleCreateProduct)
	productRoutes.Patch("/:productId", auth, admin, h.HandleUpdateProduct)
	productRoutes.Delete("/:productId", auth, admin, h.HandleDeleteProduct)
	productRoutes.Post("/:productId/images", auth, admin, h.HandleUploadImage)
	productRoutes.Delete("/:productId/images/:imageId", auth, admin, h.HandleDeleteImage)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}
	views := make([]productView, 0, len(products))
	for _, product := range products {
		views = append(views, toProductView(product, h.baseURL))
	}
	return c.JSON(fiber.Map{
		"total":    len(views),
		"products": views,
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"product": toProductView(*product, h.baseURL),
		"request": requestLink{
			Type:    "GET",
			URL:     h.baseURL + "/products",
			Comment: "look at all products",
		},
	})
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	if err := h.service.CreateProduct(&product); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created!",
		"product": toProductView(product, h.baseURL),
	})
}

// HandleUpdateProduct applies a partial update (name, price, inStock).
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return respondError(c, err)
	}
	var req struct {
		Name    *string  `json:"name"`
		Price   *float64 `json:"price"`
		InStock *bool    `json:"inStock"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product, err := h.service.UpdateProduct(productID, services.ProductUpdate{
		Name:    req.Name,
		Price:   req.Price,
		InStock: req.InStock,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully.",
		"product": toProductView(*product, h.baseURL),
	})
}

// HandleDeleteProduct deletes a product, its images and their stored files.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return respondError(c, err)
	}
	urls, err := h.service.DeleteProduct(productID)
	if err != nil {
		return respondError(c, err)
	}
	for _, url := range urls {
		if err := os.Remove(url); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove image file %s: %v", url, err)
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUploadImage attaches an uploaded JPEG or PNG image to a product.
func (h *ProductHandler) HandleUploadImage(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return respondError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Image file was not given.",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not read the uploaded file",
		})
	}
	head := make([]byte, 512)
	n, _ := file.Read(head)
	file.Close()

	ext := ".jpg"
	switch http.DetectContentType(head[:n]) {
	case "image/jpeg":
	case "image/png":
		ext = ".png"
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unsupported file type. Only JPEG and PNG images are allowed.",
		})
	}

	storedPath := filepath.Join(h.uploadDir, uuid.New().String()+ext)
	if err := c.SaveFile(fileHeader, storedPath); err != nil {
		log.Printf("Failed to store uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not store the uploaded file",
		})
	}

	isMain := c.FormValue("isMain") == "true" || c.FormValue("isMain") == "True"
	altText := c.FormValue("altText")

	image, err := h.service.AddImage(productID, filepath.ToSlash(storedPath), isMain, altText)
	if err != nil {
		if removeErr := os.Remove(storedPath); removeErr != nil {
			log.Printf("Failed to remove rejected image file %s: %v", storedPath, removeErr)
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "New image product added!",
		"image":   image,
	})
}

// HandleDeleteImage removes one product image and its stored file.
func (h *ProductHandler) HandleDeleteImage(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return respondError(c, err)
	}
	imageID, err := paramID(c, "imageId")
	if err != nil {
		return respondError(c, err)
	}
	url, err := h.service.DeleteImage(productID, imageID)
	if err != nil {
		return respondError(c, err)
	}
	if err := os.Remove(url); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove image file %s: %v", url, err)
	}
	return c.JSON(fiber.Map{"message": "Image deleted successfully!"})
}

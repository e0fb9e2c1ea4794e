package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bazario_back_end/internal/apierror"
	"bazario_back_end/internal/cache"
	"bazario_back_end/internal/middleware"
	"bazario_back_end/internal/models"
	"bazario_back_end/internal/repository"
	"bazario_back_end/internal/services"
)

// MaxProductImages borne le nombre d'images par produit.
const MaxProductImages = 6

// ProductHandler couvre le catalogue et l'upsert d'avis.
type ProductHandler struct {
	products repository.ProductStore
	shops    repository.ShopStore
	orders   repository.OrderStore
	uploader services.Uploader
	cache    *cache.Cache
}

func NewProductHandler(products repository.ProductStore, shops repository.ShopStore,
	orders repository.OrderStore, uploader services.Uploader, c *cache.Cache) *ProductHandler {
	return &ProductHandler{products: products, shops: shops, orders: orders, uploader: uploader, cache: c}
}

// CreateProduct exige 1 à 6 images (champ multipart `images`), uploadées une
// par une, dans l'ordre — séquentiel à dessein, pour ne pas marteler le
// stockage d'objets.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	shopID := c.PostForm("shopId")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	shop, err := h.shops.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.Fail(c, apierror.BadRequest("Shop Id is invalid"))
			return
		}
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		middleware.Fail(c, apierror.BadRequest("Please upload at least one image"))
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		middleware.Fail(c, apierror.BadRequest("Please upload at least one image"))
		return
	}
	if len(files) > MaxProductImages {
		middleware.Fail(c, apierror.BadRequest("You can upload up to 6 images"))
		return
	}

	imageURLs := make([]string, 0, len(files))
	for _, file := range files {
		url, err := h.uploader.Upload(ctx, "product_images", file)
		if err != nil {
			log.Println("❌ Échec upload image produit:", err)
			middleware.Fail(c, apierror.Internal("Image upload failed"))
			return
		}
		imageURLs = append(imageURLs, url)
	}

	originalPrice, _ := strconv.ParseFloat(c.PostForm("originalPrice"), 64)
	discountPrice, _ := strconv.ParseFloat(c.PostForm("discountPrice"), 64)
	stock, _ := strconv.Atoi(c.PostForm("stock"))

	product := &models.Product{
		Name:          c.PostForm("name"),
		Description:   c.PostForm("description"),
		Category:      c.PostForm("category"),
		Tags:          c.PostForm("tags"),
		OriginalPrice: originalPrice,
		DiscountPrice: discountPrice,
		Stock:         stock,
		ShopID:        shopID,
		Shop:          shop,
		Images:        imageURLs,
	}

	if err := h.products.Create(ctx, product); err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	h.cache.Invalidate(ctx, cache.AllProductsKey, cache.ShopProductsKey(shopID))

	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

// GetAllProductsShop liste le catalogue d'une boutique.
func (h *ProductHandler) GetAllProductsShop(c *gin.Context) {
	shopID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var cached []models.Product
	if h.cache.GetJSON(ctx, cache.ShopProductsKey(shopID), &cached) {
		c.JSON(http.StatusCreated, gin.H{"success": true, "products": cached})
		return
	}

	products, err := h.products.GetByShop(ctx, shopID)
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	h.cache.SetJSON(ctx, cache.ShopProductsKey(shopID), products, cache.ProductCacheTTL)
	c.JSON(http.StatusCreated, gin.H{"success": true, "products": products})
}

// GetAllProducts liste tout le catalogue, toutes boutiques confondues.
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var cached []models.Product
	if h.cache.GetJSON(ctx, cache.AllProductsKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"success": true, "products": cached})
		return
	}

	products, err := h.products.GetAll(ctx)
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	h.cache.SetJSON(ctx, cache.AllProductsKey, products, cache.ProductCacheTTL)
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// DeleteProduct supprime la fiche produit. Le nettoyage des assets distants
// est best-effort : une fuite d'asset est tolérée, pas un échec bloquant.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	product, err := h.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.Fail(c, apierror.NotFound("Product not found with this id!"))
			return
		}
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	for _, imageURL := range product.Images {
		if err := h.uploader.Remove(ctx, imageURL); err != nil {
			log.Println("⚠️ Échec suppression image produit:", err)
		}
	}

	if err := h.products.Delete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.Fail(c, apierror.NotFound("Product not found with this id!"))
			return
		}
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	h.cache.Invalidate(ctx, cache.AllProductsKey, cache.ShopProductsKey(product.ShopID))

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product and images deleted successfully!"})
}

// CreateReview applique l'upsert d'avis : un seul avis par (produit, acheteur),
// la seconde soumission remplace la première sur place ; la moyenne est
// recalculée à chaque écriture. L'auteur vient toujours du principal
// authentifié, jamais du corps de la requête.
func (h *ProductHandler) CreateReview(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		Rating    *float64 `json:"rating"`
		Comment   string   `json:"comment"`
		ProductID string   `json:"productId"`
		OrderID   string   `json:"orderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apierror.BadRequest("Missing required fields"))
		return
	}
	if req.ProductID == "" || req.OrderID == "" || req.Rating == nil {
		middleware.Fail(c, apierror.BadRequest("Missing required fields"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	product, err := h.products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.Fail(c, apierror.NotFound("Product not found"))
			return
		}
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	review := models.Review{
		User: models.ReviewUser{
			ID:     user.ID.Hex(),
			Name:   user.Name,
			Avatar: user.Avatar,
		},
		Rating:    *req.Rating,
		Comment:   req.Comment,
		ProductID: req.ProductID,
		CreatedAt: time.Now(),
	}
	if review.User.Name == "" {
		review.User.Name = "Anonymous"
	}

	product.UpsertReview(review)

	if err := h.products.UpdateReviews(ctx, req.ProductID, product.Reviews, product.Ratings); err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	// Écriture indépendante, sans atomicité avec celle de l'avis : en cas
	// d'échec on diverge sur un simple drapeau d'UI, on ne casse pas l'avis.
	if err := h.orders.MarkItemReviewed(ctx, req.OrderID, req.ProductID); err != nil {
		log.Printf("⚠️ Échec marquage isReviewed (commande %s, produit %s): %v", req.OrderID, req.ProductID, err)
	}

	h.cache.Invalidate(ctx, cache.AllProductsKey, cache.ShopProductsKey(product.ShopID))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reviewed successfully!",
		"reviews": product.Reviews,
	})
}

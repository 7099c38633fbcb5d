package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status:  "error",
		Error:   "authentication_failed",
		Details: "Invalid email or password",
	}

	ErrUnauthorized = ErrorResponse{
		Status:  "error",
		Error:   "unauthorized",
		Details: "Unauthorized: Please sign in",
	}

	ErrForbidden = ErrorResponse{
		Status:  "error",
		Error:   "forbidden",
		Details: "Forbidden: Only the admin can write",
	}

	ErrPostNotFound = ErrorResponse{
		Status:  "error",
		Error:   "not_found",
		Details: "Post not found",
	}

	ErrCollectionItemNotFound = ErrorResponse{
		Status:  "error",
		Error:   "not_found",
		Details: "Collection item not found",
	}

	ErrPostSlugExists = ErrorResponse{
		Status:  "error",
		Error:   "slug_exists",
		Details: "A post with this slug already exists",
	}

	ErrCollectionSlugExists = ErrorResponse{
		Status:  "error",
		Error:   "slug_exists",
		Details: "A collection item with this slug already exists",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Something went wrong",
	}
)

package errors

// User-friendly error messages
const (
	MsgPropertyNotFound       = "Property not found"
	MsgServiceUnavailable     = "We're unable to reach the listing service right now. Please try again in a few minutes."
	MsgNetworkUnavailable     = "Unable to connect to the server. Please check your internet connection."
	MsgRateLimited            = "You're going too quickly! Please wait a moment and try again."
	MsgInvalidParameters      = "Some fields are missing or invalid. Please check your input and try again."
	MsgInternalError          = "Something went wrong on our end. Please try again later."
	MsgUnauthorized           = "Your session has expired. Please log in again."
	MsgForbidden              = "Your account has been locked. Please contact support."
	MsgMasterDataUnavailable  = "Failed to load master data. Please try again later."
	MsgLoadPropertyFailed     = "Failed to load property data. Please try again later."
	MsgLoadPropertiesFailed   = "Failed to load properties. Please try again later."
	MsgAddPropertyFailed      = "Failed to add property. Please try again."
	MsgUpdatePropertyFailed   = "Failed to update property. Please try again."
	MsgDeletePropertyFailed   = "Failed to delete property. Please try again."
	MsgContactOwnerFailed     = "Failed to send contact request. Please try again later."
	MsgInvalidCredentials     = "Invalid username or password. Please try again."
	MsgLoginFailed            = "Login failed. Please try again."
	MsgLoginServiceNotFound   = "Service not available. Please try again later."
	MsgLoginUnexpected        = "An error occurred during login. Please try again later."
	MsgUnexpected             = "An unexpected error occurred. Please try again."
	MsgLoginRequired          = "Please log in to continue."
	MsgRegistrationFailed     = "Registration failed. Please try again."
	MsgRegistrationSuccessful = "Registration successful! Please login to continue."
	MsgContactOwnerSent       = "Request sent successfully! The owner will contact you soon."
)

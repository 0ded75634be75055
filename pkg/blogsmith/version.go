package blogsmith

// Version is reported by the health endpoint.
const Version = "1.0.0"

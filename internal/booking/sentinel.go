package booking

// AllUsers is the user id that, when passed to history queries, selects every
// driver's bookings. Registration refuses it as a real user id.
const AllUsers int64 = 1000

package chat

// Fixed chat copy. Format strings take the arguments named in their comments.
const (
	msgChatEnded = "Chat ended. Thanks for reaching out! Start a new chat anytime if you need more help."
	msgFailure   = "An error occurred while handling your request. Please try again."

	msgLoginRequired = "Please log in to view your bookings, then ask me again."
	msgNoBookings    = "You don't have any bookings yet. Browse upcoming events to get started!"
	msgBookingList   = "Here are your most recent bookings. Select one to see the details:"
	msgRefundSelect  = "Which booking would you like to cancel? Select it below and I'll check whether it can be refunded."
	msgBookingGone   = "Sorry, I couldn't find that booking. It may have been removed. Please pick another one."

	msgNoUpcomingEvents = "There are no upcoming events right now. Please check back soon!"
	msgEventList        = "Here are the upcoming events. Select one to see tickets and prices:"
	msgEventGone        = "Sorry, I couldn't find that event. Please pick another one."

	msgVenueNeedsEvent = "Please select an event first so I know which venue you mean. Browse the events below."

	msgRefundCancelled = "This booking has already been cancelled. Any refund is processed to the original payment method within 5-7 business days."
	// booking id, event title, hours until event, public support email
	msgRefundIneligible = "❌ **Online cancellation is not available for booking %s.**\n\n" +
		"**%s** starts in %.0f hours. Bookings can only be cancelled online up to 48 hours before the event.\n\n" +
		"If you have a special circumstance, email **%s** with:\n" +
		"- Your booking ID\n" +
		"- The email used for the booking\n" +
		"- The reason for cancellation"
	// booking id, event title
	msgRefundEligible = "✅ **Booking %s is eligible for cancellation.**\n\n" +
		"**%s** is more than 48 hours away. Open the booking in **My Bookings** and choose **Cancel Booking** to cancel it. " +
		"The refund goes back to your original payment method within 5-7 business days."

	msgPaymentInfo = "💳 **Payment help**\n\n" +
		"I couldn't find any pending payments on your account.\n\n" +
		"- If money was deducted but no booking was confirmed, it is refunded automatically within 5-7 business days.\n" +
		"- Make sure your card is enabled for online transactions.\n" +
		"- Try a different payment method if a payment keeps failing."
	msgPaymentPendingHeader = "⚠️ I found these bookings with incomplete payments:"
	msgPaymentPendingFooter = "If you were charged for any of these, talk to our support team and we'll sort it out."

	msgSupportPrompt   = "Please describe your issue in a few sentences. Our support team will get back to you by email."
	msgSupportEmpty    = "I didn't catch that. Please type a short description of your issue."
	msgSupportReceived = "✅ Thanks! We've received your request and shared it with our support team. " +
		"You'll hear back by email, usually within 24 hours."

	// public support email
	msgSomethingElse = "❓ **Need help with something else?**\n\n" +
		"Email us at **%s** and include:\n" +
		"- Your full name\n" +
		"- The email used for your account\n" +
		"- Your booking ID (if any)\n" +
		"- A short description of the issue\n\n" +
		"Or talk to our support team right here."

	msgEntryInfo = "📲 **Entry & QR code**\n\n" +
		"- Every ticket has a unique QR code, available in **My Bookings** and in your confirmation email.\n" +
		"- Show the QR code at the gate; each code can be scanned only once.\n" +
		"- Keep your screen brightness up and carry a valid photo ID.\n" +
		"- Screenshots work, but do not share your QR code with anyone."
)

// Option labels.
const (
	labelMainMenu       = "🏠 Main Menu"
	labelEndChat        = "👋 End Chat"
	labelTalkToSupport  = "💬 Talk to Support"
	labelMyBookings     = "🎟️ My Bookings"
	labelOtherBookings  = "🎟️ View Other Bookings"
	labelCancelBooking  = "↩️ Cancel Booking"
	labelViewBooking    = "🎫 View Booking"
	labelBrowseEvents   = "🎭 Browse Events"
	labelOtherEvents    = "🎭 Other Events"
	labelVenueInfo      = "📍 Venue Info"
	labelEventDetails   = "🎭 Event Details"
	paymentFailedStatus = "Payment Failed"
)

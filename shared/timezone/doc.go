// Package timezone provides timezone utilities for the application.
//
// Check-in and check-out dates, review timestamps and reservation records are all
// interpreted in the application timezone configured via APP_TIMEZONE.
//
//  1. Basic usage after initialization:
//     now := timezone.Now()                    // Get current time in app timezone
//     appTime := timezone.ToAppTime(someTime)  // Convert any time to app timezone
//
//  2. Formatting times in app timezone:
//     formatted := timezone.Format(time.Now(), "2006-01-02 15:04:05")
//
//  3. Parsing times in app timezone:
//     t, err := timezone.Parse("2006-01-02", "2024-01-01")
//
// Use standard IANA timezone database names ("UTC", "Asia/Tokyo",
// "America/New_York") for reliable cross-platform compatibility.
package timezone

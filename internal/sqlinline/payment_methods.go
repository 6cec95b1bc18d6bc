package sqlinline

const QGetPaymentMethod = `--sql a8a112c7-92cf-41e4-b3fb-2f566bf88634
select id, user_id, service, token, created_at
from payment_methods
where id = $1;
`
